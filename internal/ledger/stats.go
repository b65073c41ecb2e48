package ledger

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Stats summarizes a customer's account across all bills, payments and
// returns. Amounts accumulate at full precision; only the rates are
// rounded, to two decimal places, for display.
type Stats struct {
	TotalPurchases        Money           `json:"total_purchases"`
	TotalPaid             Money           `json:"total_paid"`
	TotalReturnCredits    Money           `json:"total_return_credits"`
	TotalOutstanding      Money           `json:"total_outstanding"`
	TotalPaymentsReceived Money           `json:"total_payments_received"`
	BillCount             int             `json:"bill_count"`
	PaymentCount          int             `json:"payment_count"`
	ReturnCount           int             `json:"return_count"`
	CollectionRate        decimal.Decimal `json:"collection_rate"`
	RefundRate            decimal.Decimal `json:"refund_rate"`
}

// Summarize computes account statistics from the same three collections
// the builder consumes. Rates guard against division by zero and report 0
// when there are no purchases.
func Summarize(bills []Bill, payments []Payment, returns []Return) Stats {
	purchases := decimal.Zero
	paid := decimal.Zero
	for _, b := range bills {
		purchases = purchases.Add(b.TotalAmount.Decimal)
		paid = paid.Add(b.AmountPaid.Decimal)
	}

	received := decimal.Zero
	for _, p := range payments {
		received = received.Add(p.Amount.Decimal)
	}

	refunds := decimal.Zero
	for _, r := range returns {
		refunds = refunds.Add(r.TotalRefund.Decimal)
	}

	outstanding := purchases.Sub(paid).Sub(refunds)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	collectionRate := decimal.Zero
	refundRate := decimal.Zero
	if purchases.IsPositive() {
		// AmountPaid already includes every payment recorded against the
		// bill, counter tender included, so the payment channel is not
		// added again.
		collectionRate = paid.Div(purchases).Mul(oneHundred).Round(2)
		refundRate = refunds.Div(purchases).Mul(oneHundred).Round(2)
	}

	return Stats{
		TotalPurchases:        NewMoney(purchases),
		TotalPaid:             NewMoney(paid),
		TotalReturnCredits:    NewMoney(refunds),
		TotalOutstanding:      NewMoney(outstanding),
		TotalPaymentsReceived: NewMoney(received),
		BillCount:             len(bills),
		PaymentCount:          len(payments),
		ReturnCount:           len(returns),
		CollectionRate:        collectionRate,
		RefundRate:            refundRate,
	}
}

// NetBalance returns purchases minus paid minus return credits without
// the zero floor applied to TotalOutstanding. It can be negative.
func (s Stats) NetBalance() decimal.Decimal {
	return s.TotalPurchases.Sub(s.TotalPaid.Decimal).Sub(s.TotalReturnCredits.Decimal)
}

// ReconciliationGap returns how far the ledger's closing balance drifts
// from the outstanding figure implied by per-bill paid amounts. Entries
// must be the newest-first sequence returned by Build. The two figures
// agree exactly when every bill's AmountPaid equals the payments recorded
// against it; a nonzero gap means the two bookkeeping channels disagree
// and the statement should carry a data-quality warning.
func ReconciliationGap(entries []Entry, s Stats) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	closing := entries[0].Balance.Decimal
	return closing.Sub(s.NetBalance())
}
