package enum

// Payment methods commonly used at the counter. The payment method is
// stored as free text so methods outside this list are accepted as-is.
const (
	PaymentMethodCash      = "cash"
	PaymentMethodBank      = "bank"
	PaymentMethodEasypaisa = "easypaisa"
	PaymentMethodJazzcash  = "jazzcash"
)
