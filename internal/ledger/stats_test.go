package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyInputs(t *testing.T) {
	stats := Summarize(nil, nil, nil)

	requireAmount(t, "0", stats.TotalPurchases.Decimal)
	requireAmount(t, "0", stats.TotalPaid.Decimal)
	requireAmount(t, "0", stats.TotalReturnCredits.Decimal)
	requireAmount(t, "0", stats.TotalOutstanding.Decimal)
	requireAmount(t, "0", stats.TotalPaymentsReceived.Decimal)
	requireAmount(t, "0", stats.CollectionRate)
	requireAmount(t, "0", stats.RefundRate)
	assert.Zero(t, stats.BillCount)
	assert.Zero(t, stats.PaymentCount)
	assert.Zero(t, stats.ReturnCount)
}

func TestSummarizeTotals(t *testing.T) {
	bills := []Bill{
		{ID: "b1", CreatedAt: day(1), TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(400)},
		{ID: "b2", CreatedAt: day(2), TotalAmount: MoneyFromInt(500), AmountPaid: MoneyFromInt(100)},
	}
	payments := []Payment{
		{ID: "p1", SaleID: "b1", CreatedAt: day(3), Amount: MoneyFromInt(400)},
		{ID: "p2", SaleID: "b2", CreatedAt: day(4), Amount: MoneyFromInt(100)},
	}
	returns := []Return{
		{ID: "r1", SaleID: "b2", CreatedAt: day(5), TotalRefund: MoneyFromInt(200)},
	}

	stats := Summarize(bills, payments, returns)

	requireAmount(t, "1500", stats.TotalPurchases.Decimal)
	requireAmount(t, "500", stats.TotalPaid.Decimal)
	requireAmount(t, "200", stats.TotalReturnCredits.Decimal)
	requireAmount(t, "800", stats.TotalOutstanding.Decimal)
	requireAmount(t, "500", stats.TotalPaymentsReceived.Decimal)
	assert.Equal(t, 2, stats.BillCount)
	assert.Equal(t, 2, stats.PaymentCount)
	assert.Equal(t, 1, stats.ReturnCount)
}

func TestSummarizeRates(t *testing.T) {
	tests := []struct {
		name               string
		bills              []Bill
		returns            []Return
		wantCollectionRate string
		wantRefundRate     string
	}{
		{
			name: "exact percentages",
			bills: []Bill{
				{ID: "b1", TotalAmount: MoneyFromInt(2000), AmountPaid: MoneyFromInt(500)},
			},
			returns:            []Return{{ID: "r1", TotalRefund: MoneyFromInt(100)}},
			wantCollectionRate: "25",
			wantRefundRate:     "5",
		},
		{
			name: "repeating fraction rounds to two places",
			bills: []Bill{
				{ID: "b1", TotalAmount: MoneyFromInt(300), AmountPaid: MoneyFromInt(100)},
			},
			wantCollectionRate: "33.33",
			wantRefundRate:     "0",
		},
		{
			name:               "zero purchases guards division",
			bills:              nil,
			returns:            []Return{{ID: "r1", TotalRefund: MoneyFromInt(100)}},
			wantCollectionRate: "0",
			wantRefundRate:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Summarize(tt.bills, nil, tt.returns)
			requireAmount(t, tt.wantCollectionRate, stats.CollectionRate)
			requireAmount(t, tt.wantRefundRate, stats.RefundRate)
		})
	}
}

func TestSummarizeOutstandingNeverNegative(t *testing.T) {
	bills := []Bill{
		{ID: "b1", TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(900)},
	}
	returns := []Return{
		{ID: "r1", TotalRefund: MoneyFromInt(400)},
	}

	stats := Summarize(bills, nil, returns)

	requireAmount(t, "0", stats.TotalOutstanding.Decimal)
	// NetBalance keeps the sign for reconciliation purposes.
	requireAmount(t, "-300", stats.NetBalance())
}

func TestClosingBalanceMatchesStats(t *testing.T) {
	// Every rupee paid went through a payment row, so each bill's
	// AmountPaid equals the payments recorded against it and the two
	// computations must agree.
	bills := []Bill{
		{ID: "b1", CreatedAt: day(1), TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(1000)},
		{ID: "b2", CreatedAt: day(3), TotalAmount: MoneyFromInt(2500), AmountPaid: MoneyFromInt(700)},
		{ID: "b3", CreatedAt: day(6), TotalAmount: MoneyFromInt(800), IsManualBalance: true},
	}
	payments := []Payment{
		{ID: "p1", SaleID: "b1", CreatedAt: day(1), Amount: MoneyFromInt(1000)},
		{ID: "p2", SaleID: "b2", CreatedAt: day(4), Amount: MoneyFromInt(500)},
		{ID: "p3", SaleID: "b2", CreatedAt: day(5), Amount: MoneyFromInt(200)},
	}
	returns := []Return{
		{ID: "r1", SaleID: "b2", CreatedAt: day(7), TotalRefund: MoneyFromInt(300)},
	}

	entries, _ := BuildAt(day(10), bills, payments, returns)
	stats := Summarize(bills, payments, returns)

	require.NotEmpty(t, entries)
	closing := entries[0].Balance.Decimal

	requireAmount(t, stats.NetBalance().String(), closing)
	requireAmount(t, "0", ReconciliationGap(entries, stats))
	requireAmount(t, "2300", stats.TotalOutstanding.Decimal)
}

func TestReconciliationGapDetectsChannelMismatch(t *testing.T) {
	// AmountPaid claims 500 was collected but no payment row exists, so
	// the ledger's closing balance sits 500 above the per-bill figure.
	bills := []Bill{
		{ID: "b1", CreatedAt: day(1), TotalAmount: MoneyFromInt(1000), AmountPaid: MoneyFromInt(500)},
	}

	entries, _ := BuildAt(day(10), bills, nil, nil)
	stats := Summarize(bills, nil, nil)

	requireAmount(t, "500", ReconciliationGap(entries, stats))
}

func TestReconciliationGapEmptyLedger(t *testing.T) {
	requireAmount(t, "0", ReconciliationGap(nil, Stats{}))
}
