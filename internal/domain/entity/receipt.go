package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable sale invoice.
// It is not stored; it is composed from sale data at print time.
type Receipt struct {
	Header    ReceiptHeader   `json:"header"`
	InvoiceNo string          `json:"invoice_no"`
	Date      string          `json:"date"`
	Cashier   string          `json:"cashier,omitempty"`
	Customer  string          `json:"customer,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Items     []ReceiptItem   `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Due       decimal.Decimal `json:"due"`
	Footer    string          `json:"footer,omitempty"`
}

// PaymentReceipt is a value object representing a printable payment
// acknowledgement slip.
type PaymentReceipt struct {
	Header     ReceiptHeader   `json:"header"`
	ReceiptNo  string          `json:"receipt_no"`
	Date       string          `json:"date"`
	Customer   string          `json:"customer,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	InvoiceNo  string          `json:"invoice_no"`
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}
