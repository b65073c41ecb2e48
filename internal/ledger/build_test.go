package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 10, 0, 0, 0, time.UTC)
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)),
		"want %s, got %s", want, got)
}

func TestBuildSingleBill(t *testing.T) {
	bills := []Bill{{
		ID:          "b1",
		Reference:   "INV-0001",
		CreatedAt:   day(1),
		TotalAmount: MoneyFromInt(1000),
		AmountPaid:  MoneyFromInt(0),
	}}

	entries, warnings := BuildAt(day(10), bills, nil, nil)

	require.Len(t, entries, 1)
	assert.Empty(t, warnings)

	e := entries[0]
	assert.Equal(t, KindBill, e.Kind)
	assert.Equal(t, "Bill INV-0001", e.Description)
	requireAmount(t, "1000", e.Debit.Decimal)
	requireAmount(t, "0", e.Credit.Decimal)
	requireAmount(t, "0", e.Paid.Decimal)
	requireAmount(t, "1000", e.Outstanding.Decimal)
	requireAmount(t, "1000", e.Balance.Decimal)
	assert.Equal(t, "b1", e.SaleID)
}

func TestBuildMapsBillFields(t *testing.T) {
	tests := []struct {
		name            string
		bill            Bill
		wantKind        Kind
		wantDesc        string
		wantOutstanding string
	}{
		{
			name: "ordinary bill uses invoice reference",
			bill: Bill{
				ID: "b1", Reference: "INV-0042", CreatedAt: day(1),
				TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(250),
			},
			wantKind:        KindBill,
			wantDesc:        "Bill INV-0042",
			wantOutstanding: "750",
		},
		{
			name: "manual balance becomes cash loan",
			bill: Bill{
				ID: "b2", Reference: "INV-0043", CreatedAt: day(1),
				TotalAmount: MoneyFromInt(5000), IsManualBalance: true,
			},
			wantKind:        KindCashLoan,
			wantDesc:        "Manual Balance",
			wantOutstanding: "5000",
		},
		{
			name: "overpaid bill floors outstanding at zero",
			bill: Bill{
				ID: "b3", Reference: "INV-0044", CreatedAt: day(1),
				TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(1200),
			},
			wantKind:        KindBill,
			wantDesc:        "Bill INV-0044",
			wantOutstanding: "0",
		},
		{
			name: "missing reference falls back to id tail",
			bill: Bill{
				ID: "c91fd2e8a4b0", CreatedAt: day(1),
				TotalAmount: MoneyFromInt(100),
			},
			wantKind:        KindBill,
			wantDesc:        "Bill #E8A4B0",
			wantOutstanding: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _ := BuildAt(day(10), []Bill{tt.bill}, nil, nil)
			require.Len(t, entries, 1)

			e := entries[0]
			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantDesc, e.Description)
			requireAmount(t, tt.wantOutstanding, e.Outstanding.Decimal)
		})
	}
}

func TestBuildPaymentDescriptionIncludesMethod(t *testing.T) {
	payments := []Payment{
		{ID: "p1", CreatedAt: day(1), Amount: MoneyFromInt(500), Method: "easypaisa"},
		{ID: "p2", CreatedAt: day(2), Amount: MoneyFromInt(200)},
	}

	entries, _ := BuildAt(day(10), nil, payments, nil)
	require.Len(t, entries, 2)

	// Newest first: p2 then p1.
	assert.Equal(t, "Payment Received", entries[0].Description)
	assert.Equal(t, "Payment Received (easypaisa)", entries[1].Description)
	for _, e := range entries {
		assert.Equal(t, KindPayment, e.Kind)
		requireAmount(t, "0", e.Debit.Decimal)
		requireAmount(t, "0", e.Paid.Decimal)
		requireAmount(t, "0", e.TotalAmount.Decimal)
		assert.Nil(t, e.Items)
	}
}

func TestBuildReturnDescriptions(t *testing.T) {
	tests := []struct {
		name     string
		ret      Return
		wantDesc string
	}{
		{
			name:     "item return",
			ret:      Return{ID: "r1", CreatedAt: day(1), TotalRefund: MoneyFromInt(300), Type: ReturnTypeItem},
			wantDesc: "Item Return",
		},
		{
			name:     "full bill return with reason",
			ret:      Return{ID: "r2", CreatedAt: day(1), TotalRefund: MoneyFromInt(900), Type: ReturnTypeFullBill, Reason: "damaged cans"},
			wantDesc: "Full Bill Return - damaged cans",
		},
		{
			name:     "unknown type treated as item return",
			ret:      Return{ID: "r3", CreatedAt: day(1), TotalRefund: MoneyFromInt(50), Type: "???"},
			wantDesc: "Item Return",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _ := BuildAt(day(10), nil, nil, []Return{tt.ret})
			require.Len(t, entries, 1)

			e := entries[0]
			assert.Equal(t, KindReturn, e.Kind)
			assert.Equal(t, tt.wantDesc, e.Description)
			requireAmount(t, tt.ret.TotalRefund.String(), e.Credit.Decimal)
			// Refund mirrors into Paid for display only.
			requireAmount(t, tt.ret.TotalRefund.String(), e.Paid.Decimal)
		})
	}
}

func TestBuildBillWithFullPayment(t *testing.T) {
	bills := []Bill{{
		ID: "b1", Reference: "INV-0001", CreatedAt: day(1),
		TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(1000),
	}}
	payments := []Payment{{
		ID: "p1", SaleID: "b1", CreatedAt: day(2),
		Amount: MoneyFromInt(1000), Method: "cash",
	}}

	entries, _ := BuildAt(day(10), bills, payments, nil)
	require.Len(t, entries, 2)

	// Newest first: the payment is displayed before the bill.
	payment, bill := entries[0], entries[1]

	assert.Equal(t, KindPayment, payment.Kind)
	requireAmount(t, "0", payment.Balance.Decimal)

	assert.Equal(t, KindBill, bill.Kind)
	// The bill debits its full total even though it was paid at the
	// counter; the payment entry carries the credit.
	requireAmount(t, "1000", bill.Balance.Decimal)
	requireAmount(t, "1000", bill.Paid.Decimal)
	requireAmount(t, "0", bill.Outstanding.Decimal)
}

func TestBuildBillWithPartialReturn(t *testing.T) {
	bills := []Bill{{
		ID: "b1", Reference: "INV-0001", CreatedAt: day(1),
		TotalAmount: MoneyFromInt(1000),
	}}
	returns := []Return{{
		ID: "r1", SaleID: "b1", CreatedAt: day(2),
		TotalRefund: MoneyFromInt(300), Type: ReturnTypeItem,
	}}

	entries, _ := BuildAt(day(10), bills, nil, returns)
	require.Len(t, entries, 2)

	ret, bill := entries[0], entries[1]
	requireAmount(t, "700", ret.Balance.Decimal)
	requireAmount(t, "1000", bill.Balance.Decimal)
}

func TestBuildReturnWithoutSaleStillIncluded(t *testing.T) {
	returns := []Return{{
		ID: "r1", CreatedAt: day(1), TotalRefund: MoneyFromInt(250),
	}}

	entries, _ := BuildAt(day(10), nil, nil, returns)

	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].SaleID)
	requireAmount(t, "-250", entries[0].Balance.Decimal)
}

func TestBuildOrdersByDateThenID(t *testing.T) {
	ts := day(5)
	bills := []Bill{
		{ID: "zz", CreatedAt: ts, TotalAmount: MoneyFromInt(10)},
		{ID: "aa", CreatedAt: ts, TotalAmount: MoneyFromInt(20)},
	}
	payments := []Payment{{ID: "mm", CreatedAt: ts, Amount: MoneyFromInt(5)}}

	entries, _ := BuildAt(day(10), bills, payments, nil)
	require.Len(t, entries, 3)

	// Chronological order is aa, mm, zz; display order is the exact
	// reverse.
	assert.Equal(t, "zz", entries[0].ID)
	assert.Equal(t, "mm", entries[1].ID)
	assert.Equal(t, "aa", entries[2].ID)

	// Balances were computed in chronological order: 20, then 15, then 25.
	requireAmount(t, "25", entries[0].Balance.Decimal)
	requireAmount(t, "15", entries[1].Balance.Decimal)
	requireAmount(t, "20", entries[2].Balance.Decimal)
}

func TestBuildDisplayOrderIsReversedChronology(t *testing.T) {
	bills := []Bill{
		{ID: "b1", CreatedAt: day(3), TotalAmount: MoneyFromInt(100)},
		{ID: "b2", CreatedAt: day(1), TotalAmount: MoneyFromInt(200)},
	}
	payments := []Payment{
		{ID: "p1", CreatedAt: day(2), Amount: MoneyFromInt(50)},
		{ID: "p2", CreatedAt: day(4), Amount: MoneyFromInt(75)},
	}
	returns := []Return{
		{ID: "r1", CreatedAt: day(5), TotalRefund: MoneyFromInt(25)},
	}

	entries, _ := BuildAt(day(10), bills, payments, returns)
	require.Len(t, entries, 5)

	for i := 0; i < len(entries)-1; i++ {
		assert.False(t, entries[i].Date.Before(entries[i+1].Date),
			"entry %d (%s) should not predate entry %d (%s)",
			i, entries[i].Date, i+1, entries[i+1].Date)
	}
}

func TestBuildEntryCountMatchesInputs(t *testing.T) {
	bills := []Bill{
		{ID: "b1", CreatedAt: day(1), TotalAmount: MoneyFromInt(100)},
		{ID: "b2", CreatedAt: day(2), TotalAmount: MoneyFromInt(200)},
		{ID: "b3", CreatedAt: day(3), TotalAmount: MoneyFromInt(300)},
	}
	payments := []Payment{
		{ID: "p1", CreatedAt: day(4), Amount: MoneyFromInt(50)},
		{ID: "p2", CreatedAt: day(5), Amount: MoneyFromInt(60)},
	}
	returns := []Return{
		{ID: "r1", CreatedAt: day(6), TotalRefund: MoneyFromInt(30)},
	}

	entries, _ := BuildAt(day(10), bills, payments, returns)

	assert.Len(t, entries, len(bills)+len(payments)+len(returns))
}

func TestBuildMissingDatePlacedAtBuildTime(t *testing.T) {
	now := day(15)
	bills := []Bill{
		{ID: "b1", CreatedAt: day(1), TotalAmount: MoneyFromInt(100)},
		{ID: "b2", TotalAmount: MoneyFromInt(200)}, // no date
	}

	entries, warnings := BuildAt(now, bills, nil, nil)
	require.Len(t, entries, 2)

	// The undated bill lands at the build time, after the dated one, so
	// it is first in the newest-first view.
	undated := entries[0]
	assert.Equal(t, "b2", undated.ID)
	assert.True(t, undated.Date.Equal(now))
	assert.True(t, undated.DateEstimated)
	assert.False(t, entries[1].DateEstimated)

	require.Len(t, warnings, 1)
	assert.Equal(t, "b2", warnings[0].EntryID)
	assert.Contains(t, warnings[0].Message, "no usable date")
}

func TestBuildIsDeterministic(t *testing.T) {
	now := day(20)
	ts := day(5)
	bills := []Bill{
		{ID: "b2", CreatedAt: ts, TotalAmount: MoneyFromInt(100)},
		{ID: "b1", CreatedAt: ts, TotalAmount: MoneyFromInt(200)},
	}
	payments := []Payment{
		{ID: "p1", CreatedAt: ts, Amount: MoneyFromInt(40), Method: "cash"},
	}
	returns := []Return{
		{ID: "r1", TotalRefund: MoneyFromInt(10)}, // undated on purpose
	}

	first, firstWarnings := BuildAt(now, bills, payments, returns)
	second, secondWarnings := BuildAt(now, bills, payments, returns)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, firstWarnings, secondWarnings)
}

func TestBuildEmptyInputs(t *testing.T) {
	entries, warnings := BuildAt(day(1), nil, nil, nil)

	assert.Empty(t, entries)
	assert.Empty(t, warnings)
}

func TestBuildItemsOnlyOnBillAndReturnEntries(t *testing.T) {
	items := []Item{{Name: "Weather Shield 4L", Quantity: 2, UnitPrice: MoneyFromInt(500), Total: MoneyFromInt(1000)}}
	bills := []Bill{{ID: "b1", CreatedAt: day(1), TotalAmount: MoneyFromInt(1000), Items: items}}
	payments := []Payment{{ID: "p1", CreatedAt: day(2), Amount: MoneyFromInt(100)}}
	returns := []Return{{ID: "r1", CreatedAt: day(3), TotalRefund: MoneyFromInt(200), Items: items[:1]}}

	entries, _ := BuildAt(day(10), bills, payments, returns)
	require.Len(t, entries, 3)

	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.ID] = e
	}
	assert.Len(t, byID["b1"].Items, 1)
	assert.Len(t, byID["r1"].Items, 1)
	assert.Nil(t, byID["p1"].Items)
}
