package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/ledger"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
)

func TestGetCustomerStatementRequiresPhone(t *testing.T) {
	f := newFixture()

	_, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "phone is required")
}

func TestGetCustomerStatementSnapshotsAllCollections(t *testing.T) {
	const phone = "03001112223"
	f := newFixture()
	f.seedCustomer(entity.Customer{Name: "Haji Akbar", Phone: phone})

	bill := f.seedSale(entity.Sale{
		CustomerPhone: phone,
		CustomerName:  "Haji Akbar",
		InvoiceNo:     "INV-1001",
		TotalAmount:   dec("2000"),
		AmountPaid:    dec("500"),
		PaymentStatus: enum.PaymentStatusPartial,
		CreatedAt:     day(1),
	})
	f.seedPayment(entity.Payment{
		SaleID:    bill.ID,
		Amount:    dec("500"),
		Method:    enum.PaymentMethodCash,
		CreatedAt: day(2),
	})
	f.seedSale(entity.Sale{
		CustomerPhone:   phone,
		IsManualBalance: true,
		TotalAmount:     dec("1000"),
		CreatedAt:       day(3),
	})
	f.seedReturn(entity.Return{
		SaleID:        &bill.ID,
		CustomerPhone: phone,
		TotalRefund:   dec("300"),
		ReturnType:    enum.ReturnTypeItem,
		CreatedAt:     day(4),
	})

	stmt, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{CustomerPhone: phone})
	require.NoError(t, err)

	assert.Equal(t, "Haji Akbar", stmt.CustomerName)
	require.NotNil(t, stmt.Customer)

	// Newest first: return, manual balance, payment, bill.
	require.Len(t, stmt.Entries, 4)
	assert.Equal(t, ledger.KindReturn, stmt.Entries[0].Kind)
	assert.Equal(t, ledger.KindCashLoan, stmt.Entries[1].Kind)
	assert.Equal(t, ledger.KindPayment, stmt.Entries[2].Kind)
	assert.Equal(t, ledger.KindBill, stmt.Entries[3].Kind)

	assert.Equal(t, "Manual Balance", stmt.Entries[1].Description)
	assert.Equal(t, "Payment Received (cash)", stmt.Entries[2].Description)
	assert.Equal(t, "Bill INV-1001", stmt.Entries[3].Description)

	// 2000 - 500 + 1000 - 300 applied oldest first.
	requireAmount(t, "2200", stmt.Entries[0].Balance.Decimal)
	requireAmount(t, "1000", stmt.Entries[1].Debit.Decimal)

	requireAmount(t, "3000", stmt.Summary.TotalPurchases.Decimal)
	requireAmount(t, "500", stmt.Summary.TotalPaid.Decimal)
	requireAmount(t, "300", stmt.Summary.TotalReturnCredits.Decimal)
	requireAmount(t, "2200", stmt.Summary.TotalOutstanding.Decimal)
	assert.Equal(t, 2, stmt.Summary.BillCount)
	assert.Equal(t, 1, stmt.Summary.PaymentCount)
	assert.Equal(t, 1, stmt.Summary.ReturnCount)

	// Paid figures line up with payment rows, so no drift warning.
	assert.Empty(t, stmt.Warnings)
}

func TestGetCustomerStatementWalkIn(t *testing.T) {
	const phone = "03009998877"
	f := newFixture()
	f.seedSale(entity.Sale{
		CustomerPhone: phone,
		CustomerName:  "Ali",
		TotalAmount:   dec("700"),
		CreatedAt:     day(1),
	})
	f.seedSale(entity.Sale{
		CustomerPhone: phone,
		CustomerName:  "Ali Paint Works",
		TotalAmount:   dec("300"),
		CreatedAt:     day(2),
	})

	stmt, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{CustomerPhone: phone})
	require.NoError(t, err)

	assert.Nil(t, stmt.Customer)
	// The most recent name recorded on a sale wins.
	assert.Equal(t, "Ali Paint Works", stmt.CustomerName)
	assert.Len(t, stmt.Entries, 2)
}

func TestGetCustomerStatementNameFallsBackToPhone(t *testing.T) {
	const phone = "03151234567"
	f := newFixture()
	f.seedSale(entity.Sale{CustomerPhone: phone, TotalAmount: dec("100"), CreatedAt: day(1)})

	stmt, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{CustomerPhone: phone})
	require.NoError(t, err)
	assert.Equal(t, phone, stmt.CustomerName)
}

func TestGetCustomerStatementReportsReconciliationGap(t *testing.T) {
	const phone = "03214445566"
	f := newFixture()
	// Imported bill with a paid figure and no payment rows behind it.
	f.seedSale(entity.Sale{
		CustomerPhone: phone,
		TotalAmount:   dec("1000"),
		AmountPaid:    dec("400"),
		PaymentStatus: enum.PaymentStatusPartial,
		CreatedAt:     day(1),
	})

	stmt, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{CustomerPhone: phone})
	require.NoError(t, err)

	// The running balance only ever sees payment rows, the summary trusts
	// the per-bill paid figure. The two disagree by the unrecorded 400.
	require.Len(t, stmt.Entries, 1)
	requireAmount(t, "1000", stmt.Entries[0].Balance.Decimal)
	requireAmount(t, "600", stmt.Summary.TotalOutstanding.Decimal)

	require.Len(t, stmt.Warnings, 1)
	assert.Contains(t, stmt.Warnings[0].Message, "400.00")
	assert.Contains(t, stmt.Warnings[0].Message, "no payment records")
}

func TestGetCustomerStatementPeriodBounds(t *testing.T) {
	const phone = "03331112222"
	f := newFixture()
	sale := f.seedSale(entity.Sale{
		CustomerPhone: phone,
		TotalAmount:   dec("1500"),
		CreatedAt:     day(5),
	})
	f.seedPayment(entity.Payment{
		SaleID:    sale.ID,
		Amount:    dec("500"),
		CreatedAt: day(20),
	})

	from, to := day(1), day(10)
	stmt, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{
		CustomerPhone: phone,
		From:          &from,
		To:            &to,
	})
	require.NoError(t, err)

	// The payment falls after the period and stays out of both channels.
	require.Len(t, stmt.Entries, 1)
	assert.Equal(t, ledger.KindBill, stmt.Entries[0].Kind)
	assert.Equal(t, 0, stmt.Summary.PaymentCount)
	requireAmount(t, "1500", stmt.Summary.TotalOutstanding.Decimal)

	require.NotNil(t, stmt.PeriodStart)
	require.NotNil(t, stmt.PeriodEnd)
	assert.True(t, stmt.PeriodStart.Equal(from))
	assert.True(t, stmt.PeriodEnd.Equal(to))
}

func TestGetCustomerStatementExcludesOtherPhones(t *testing.T) {
	f := newFixture()
	f.seedSale(entity.Sale{CustomerPhone: "03000000001", TotalAmount: dec("900"), CreatedAt: day(1)})

	stmt, err := f.statementService().GetCustomerStatement(context.Background(), &StatementInput{CustomerPhone: "03000000002"})
	require.NoError(t, err)

	assert.Empty(t, stmt.Entries)
	assert.Equal(t, 0, stmt.Summary.BillCount)
	requireAmount(t, "0", stmt.Summary.TotalOutstanding.Decimal)
	assert.Empty(t, stmt.Warnings)
}

func TestEmailStatementUnconfigured(t *testing.T) {
	f := newFixture()
	f.seedSale(entity.Sale{CustomerPhone: "03001234567", TotalAmount: dec("100"), CreatedAt: day(1)})

	err := f.statementService().EmailStatement(context.Background(), &StatementInput{CustomerPhone: "03001234567"}, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Contains(t, err.Error(), "Email is not configured")
}
