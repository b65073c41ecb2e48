package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Build maps bills, payments and returns to ledger entries, orders them
// chronologically, computes running balances and returns the sequence
// newest-first together with any data-quality warnings. Records without a
// usable date are placed at the current time.
func Build(bills []Bill, payments []Payment, returns []Return) ([]Entry, []Warning) {
	return BuildAt(time.Now(), bills, payments, returns)
}

// BuildAt is Build with an explicit reference time substituted for missing
// dates. Identical inputs and reference time always produce identical
// output, tie-break order included.
func BuildAt(now time.Time, bills []Bill, payments []Payment, returns []Return) ([]Entry, []Warning) {
	entries := make([]Entry, 0, len(bills)+len(payments)+len(returns))
	warnings := []Warning{}

	for _, b := range bills {
		entries = append(entries, billEntry(b))
	}
	for _, p := range payments {
		entries = append(entries, paymentEntry(p))
	}
	for _, r := range returns {
		entries = append(entries, returnEntry(r))
	}

	for i := range entries {
		if entries[i].Date.IsZero() {
			entries[i].Date = now
			entries[i].DateEstimated = true
			warnings = append(warnings, Warning{
				EntryID: entries[i].ID,
				Message: fmt.Sprintf("%s entry has no usable date, placed at current time", entries[i].Kind),
			})
		}
	}

	// Oldest first; ties break on ID so the order is total and repeatable.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Date.Before(entries[j].Date)
	})

	// A bill debits its full total; the tendered portion is credited by
	// that payment's own entry, so amounts paid at the counter are not
	// netted here.
	running := decimal.Zero
	for i := range entries {
		switch entries[i].Kind {
		case KindBill, KindCashLoan:
			running = running.Add(entries[i].Debit.Decimal)
		case KindPayment, KindReturn:
			running = running.Sub(entries[i].Credit.Decimal)
		}
		entries[i].Balance = NewMoney(running)
	}

	// Newest first for display. Balances travel with their entries.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, warnings
}

func billEntry(b Bill) Entry {
	outstanding := b.TotalAmount.Sub(b.AmountPaid.Decimal)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	kind := KindBill
	description := "Bill " + billRef(b)
	if b.IsManualBalance {
		kind = KindCashLoan
		description = "Manual Balance"
	}

	return Entry{
		ID:          b.ID,
		Date:        b.CreatedAt,
		Kind:        kind,
		Description: description,
		Debit:       b.TotalAmount,
		Paid:        b.AmountPaid,
		TotalAmount: b.TotalAmount,
		Outstanding: NewMoney(outstanding),
		Notes:       b.Notes,
		DueDate:     b.DueDate,
		Status:      b.Status,
		SaleID:      b.ID,
		Items:       b.Items,
	}
}

func paymentEntry(p Payment) Entry {
	description := "Payment Received"
	if p.Method != "" {
		description = fmt.Sprintf("Payment Received (%s)", p.Method)
	}

	return Entry{
		ID:          p.ID,
		Date:        p.CreatedAt,
		Kind:        KindPayment,
		Description: description,
		Credit:      p.Amount,
		Notes:       p.Notes,
		SaleID:      p.SaleID,
	}
}

func returnEntry(r Return) Entry {
	description := "Item Return"
	if r.Type == ReturnTypeFullBill {
		description = "Full Bill Return"
	}
	if r.Reason != "" {
		description += " - " + r.Reason
	}

	return Entry{
		ID:          r.ID,
		Date:        r.CreatedAt,
		Kind:        KindReturn,
		Description: description,
		Credit:      r.TotalRefund,
		// Paid mirrors the refund for display; the running balance only
		// applies the credit.
		Paid:   r.TotalRefund,
		SaleID: r.SaleID,
		Items:  r.Items,
	}
}

// billRef derives the human reference shown in a bill description: the
// invoice number when one exists, otherwise the tail of the record ID.
func billRef(b Bill) string {
	if b.Reference != "" {
		return b.Reference
	}
	id := b.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return "#" + strings.ToUpper(id)
}
