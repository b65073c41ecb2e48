// Package ledger derives a customer's chronological account statement from
// raw sale, payment and return records. The computation is pure: it maps
// the three input collections to a dated entry sequence with running
// balances plus summary statistics, and never touches storage or the clock
// beyond the injected reference time.
package ledger

import "time"

// Kind identifies what a ledger entry was derived from
type Kind string

const (
	KindBill     Kind = "bill"
	KindPayment  Kind = "payment"
	KindCashLoan Kind = "cash_loan"
	KindReturn   Kind = "return"
)

// Return types carried on Return.Type
const (
	ReturnTypeItem     = "item"
	ReturnTypeFullBill = "full_bill"
)

// Item is a line item attached to a bill or return entry
type Item struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	Total     Money  `json:"total"`
}

// Bill is a snapshot of one sale as the builder consumes it. A bill with
// IsManualBalance set represents a debt entered without a point-of-sale
// transaction, such as a cash loan.
type Bill struct {
	ID              string     `json:"id"`
	Reference       string     `json:"reference,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	TotalAmount     Money      `json:"total_amount"`
	AmountPaid      Money      `json:"amount_paid"`
	Status          string     `json:"payment_status,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	IsManualBalance bool       `json:"is_manual_balance"`
	Notes           string     `json:"notes,omitempty"`
	Items           []Item     `json:"items,omitempty"`
}

// Payment is a snapshot of one recovery or point-of-sale payment
type Payment struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference,omitempty"`
	SaleID    string    `json:"sale_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Amount    Money     `json:"amount"`
	Method    string    `json:"payment_method,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// Return is a snapshot of one goods return. SaleID may be empty when the
// referenced sale no longer exists; the entry is still produced.
type Return struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference,omitempty"`
	SaleID      string    `json:"sale_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	TotalRefund Money     `json:"total_refund"`
	Type        string    `json:"return_type,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Items       []Item    `json:"items,omitempty"`
}

// Entry is one row of the computed statement. Entries are derived, never
// persisted. Balance is the running amount owed after applying this entry
// in chronological order; it travels with the entry through the
// newest-first reversal for display.
type Entry struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	Kind        Kind       `json:"kind"`
	Description string     `json:"description"`
	Debit       Money      `json:"debit"`
	Credit      Money      `json:"credit"`
	Paid        Money      `json:"paid"`
	TotalAmount Money      `json:"total_amount"`
	Outstanding Money      `json:"outstanding"`
	Balance     Money      `json:"balance"`
	Notes       string     `json:"notes,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status,omitempty"`
	SaleID      string     `json:"sale_id,omitempty"`
	Items       []Item     `json:"items,omitempty"`

	// DateEstimated is set when the source record carried no usable date
	// and the build time was substituted. Ordering around this entry is
	// approximate.
	DateEstimated bool `json:"date_estimated,omitempty"`
}

// Warning reports a data-quality problem found while building a statement.
// Warnings degrade the result, they never abort it.
type Warning struct {
	EntryID string `json:"entry_id,omitempty"`
	Message string `json:"message"`
}
