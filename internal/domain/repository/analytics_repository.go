package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtorResult represents one customer's receivable position
type DebtorResult struct {
	CustomerPhone string
	CustomerName  string
	TotalBilled   decimal.Decimal
	TotalPaid     decimal.Decimal
	Outstanding   decimal.Decimal
	BillCount     int
}

// DailySalesResult represents billing and collections for a single day
type DailySalesResult struct {
	Date     time.Time
	Revenue  decimal.Decimal
	Received decimal.Decimal
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductCode  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// MethodTotalResult represents payments aggregated by method
type MethodTotalResult struct {
	Method string
	Total  decimal.Decimal
	Count  int
}

// BrandSalesResult represents sales aggregated by paint brand
type BrandSalesResult struct {
	BrandID      *uuid.UUID
	BrandName    string
	QuantitySold int
	Revenue      decimal.Decimal
}

// PaidMismatchResult represents a sale whose recorded paid amount does not
// match the sum of its live payment rows
type PaidMismatchResult struct {
	SaleID        uuid.UUID
	InvoiceNo     string
	CustomerPhone string
	AmountPaid    decimal.Decimal
	PaymentSum    decimal.Decimal
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetSalesTotalBetween returns the billed total in [start, end)
	GetSalesTotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// GetPaymentsTotalBetween returns the collected total in [start, end)
	GetPaymentsTotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// GetOutstandingTotal returns billed minus paid minus refunds across
	// all customers, floored at zero
	GetOutstandingTotal(ctx context.Context) (decimal.Decimal, error)

	// GetTopDebtors returns customers ranked by outstanding balance
	GetTopDebtors(ctx context.Context, limit int) ([]DebtorResult, error)

	// GetDailySales returns billing and collections for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetPaymentMethodTotals returns payments grouped by method in [start, end)
	GetPaymentMethodTotals(ctx context.Context, start, end time.Time) ([]MethodTotalResult, error)

	// GetSalesByBrand returns sold quantity and revenue grouped by brand
	// in [start, end). Products without a brand group under an empty name.
	GetSalesByBrand(ctx context.Context, start, end time.Time) ([]BrandSalesResult, error)

	// CountLowStockProducts returns how many products sit at or below
	// their alert quantity
	CountLowStockProducts(ctx context.Context) (int64, error)

	// CountOverdueSales returns how many unsettled bills have a due date
	// before the cutoff
	CountOverdueSales(ctx context.Context, cutoff time.Time) (int64, error)

	// CountSalesBefore returns how many live sales are dated before t.
	// Rows predating the shop's records carry zero or garbled timestamps
	// from the legacy import.
	CountSalesBefore(ctx context.Context, t time.Time) (int64, error)

	// GetPaidMismatches returns sales whose amount_paid differs from the
	// sum of their payment rows
	GetPaidMismatches(ctx context.Context, limit int) ([]PaidMismatchResult, error)
}
