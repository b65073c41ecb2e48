package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// ReportService provides dashboard and receivables reporting
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	customerRepo  repository.CustomerRepository
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	customerRepo repository.CustomerRepository,
) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		customerRepo:  customerRepo,
	}
}

// DashboardStats represents the numbers on the landing screen
type DashboardStats struct {
	TodaySales       decimal.Decimal                `json:"today_sales"`
	TodayCollections decimal.Decimal                `json:"today_collections"`
	MonthSales       decimal.Decimal                `json:"month_sales"`
	MonthCollections decimal.Decimal                `json:"month_collections"`
	TotalOutstanding decimal.Decimal                `json:"total_outstanding"`
	TotalCustomers   int64                          `json:"total_customers"`
	LowStockCount    int64                          `json:"low_stock_count"`
	OverdueCount     int64                          `json:"overdue_count"`
	TopDebtors       []repository.DebtorResult      `json:"top_debtors"`
	DailySales       []repository.DailySalesResult  `json:"daily_sales"`
	SalesByBrand     []repository.BrandSalesResult  `json:"sales_by_brand"`
	TopProducts      []repository.TopProductResult  `json:"top_products"`
	PaymentMethods   []repository.MethodTotalResult `json:"payment_methods"`
}

// GetDashboardStats returns dashboard statistics
func (s *ReportService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}

	var err error
	if stats.TodaySales, err = s.analyticsRepo.GetSalesTotalBetween(ctx, startOfDay, endOfDay); err != nil {
		return nil, err
	}
	if stats.TodayCollections, err = s.analyticsRepo.GetPaymentsTotalBetween(ctx, startOfDay, endOfDay); err != nil {
		return nil, err
	}
	if stats.MonthSales, err = s.analyticsRepo.GetSalesTotalBetween(ctx, startOfMonth, endOfDay); err != nil {
		return nil, err
	}
	if stats.MonthCollections, err = s.analyticsRepo.GetPaymentsTotalBetween(ctx, startOfMonth, endOfDay); err != nil {
		return nil, err
	}
	if stats.TotalOutstanding, err = s.analyticsRepo.GetOutstandingTotal(ctx); err != nil {
		return nil, err
	}

	// Customer count only; one row is enough
	countParams := pagination.DefaultPagination()
	countParams.PerPage = 1
	_, customerCount, err := s.customerRepo.List(ctx, countParams, "")
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customerCount

	if stats.LowStockCount, err = s.analyticsRepo.CountLowStockProducts(ctx); err != nil {
		return nil, err
	}
	if stats.OverdueCount, err = s.analyticsRepo.CountOverdueSales(ctx, now); err != nil {
		return nil, err
	}
	if stats.TopDebtors, err = s.analyticsRepo.GetTopDebtors(ctx, 5); err != nil {
		return nil, err
	}
	if stats.DailySales, err = s.analyticsRepo.GetDailySales(ctx, 14); err != nil {
		return nil, err
	}
	if stats.SalesByBrand, err = s.analyticsRepo.GetSalesByBrand(ctx, startOfMonth, endOfDay); err != nil {
		return nil, err
	}
	if stats.TopProducts, err = s.analyticsRepo.GetTopProducts(ctx, 5); err != nil {
		return nil, err
	}
	if stats.PaymentMethods, err = s.analyticsRepo.GetPaymentMethodTotals(ctx, startOfMonth, endOfDay); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetTopDebtors returns customers ranked by outstanding balance
func (s *ReportService) GetTopDebtors(ctx context.Context, limit int) ([]repository.DebtorResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.analyticsRepo.GetTopDebtors(ctx, limit)
}

// GetDailySales returns billing and collection totals for the last N days
func (s *ReportService) GetDailySales(ctx context.Context, days int) ([]repository.DailySalesResult, error) {
	if days <= 0 {
		days = 14
	}
	if days > 90 {
		return nil, apperror.NewBadRequestError("Daily sales range is limited to 90 days")
	}
	return s.analyticsRepo.GetDailySales(ctx, days)
}

// GetSalesByBrand returns sold quantity and revenue grouped by brand.
// A zero start falls back to the first of the current month, a zero end
// to now.
func (s *ReportService) GetSalesByBrand(ctx context.Context, start, end time.Time) ([]repository.BrandSalesResult, error) {
	now := time.Now()
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End date must be after start date")
	}
	return s.analyticsRepo.GetSalesByBrand(ctx, start, end)
}

// GetPaymentMethodTotals returns payments grouped by method over a period
func (s *ReportService) GetPaymentMethodTotals(ctx context.Context, start, end time.Time) ([]repository.MethodTotalResult, error) {
	return s.analyticsRepo.GetPaymentMethodTotals(ctx, start, end)
}
