package request

// PrintReceiptRequest selects which document to print: a sale invoice
// or a payment receipt.
type PrintReceiptRequest struct {
	Type string `json:"type" binding:"required,oneof=sale payment"`
	ID   string `json:"id" binding:"required,uuid"`
}
