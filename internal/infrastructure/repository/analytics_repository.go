package repository

import (
	"context"
	"time"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	domainRepo "github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSalesTotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
	`, start, end).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GetPaymentsTotalBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
	`, start, end).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GetOutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT GREATEST(
			COALESCE((SELECT SUM(total_amount - amount_paid) FROM sales WHERE deleted_at IS NULL), 0)
			- COALESCE((SELECT SUM(total_refund) FROM sale_returns WHERE deleted_at IS NULL), 0),
			0)
	`).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GetTopDebtors(ctx context.Context, limit int) ([]domainRepo.DebtorResult, error) {
	var results []domainRepo.DebtorResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.customer_phone as customer_phone,
			MAX(s.customer_name) as customer_name,
			COALESCE(SUM(s.total_amount), 0) as total_billed,
			COALESCE(SUM(s.amount_paid), 0) as total_paid,
			GREATEST(
				COALESCE(SUM(s.total_amount), 0) - COALESCE(SUM(s.amount_paid), 0)
				- COALESCE((
					SELECT SUM(sr.total_refund) FROM sale_returns sr
					WHERE sr.customer_phone = s.customer_phone AND sr.deleted_at IS NULL
				), 0),
				0) as outstanding,
			COUNT(s.id) as bill_count
		FROM sales s
		WHERE s.deleted_at IS NULL
		GROUP BY s.customer_phone
		HAVING COALESCE(SUM(s.total_amount), 0) - COALESCE(SUM(s.amount_paid), 0)
			- COALESCE((
				SELECT SUM(sr.total_refund) FROM sale_returns sr
				WHERE sr.customer_phone = s.customer_phone AND sr.deleted_at IS NULL
			), 0) > 0
		ORDER BY outstanding DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	// Generate dates for the last N days and get totals for each
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var totals struct {
			Revenue  decimal.Decimal
			Received decimal.Decimal
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COALESCE((
					SELECT SUM(total_amount) FROM sales
					WHERE deleted_at IS NULL AND created_at >= ? AND created_at < ?
				), 0) as revenue,
				COALESCE((
					SELECT SUM(amount) FROM payments
					WHERE deleted_at IS NULL AND created_at >= ? AND created_at < ?
				), 0) as received
		`, startOfDay, endOfDay, startOfDay, endOfDay).Scan(&totals).Error

		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:     startOfDay,
			Revenue:  totals.Revenue,
			Received: totals.Received,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as product_name,
			p.code as product_code,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.total), 0) as revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id AND p.deleted_at IS NULL
		JOIN sales s ON s.id = si.sale_id AND s.deleted_at IS NULL
		WHERE si.deleted_at IS NULL
		GROUP BY p.id, p.name, p.code
		ORDER BY revenue DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetPaymentMethodTotals(ctx context.Context, start, end time.Time) ([]domainRepo.MethodTotalResult, error) {
	var results []domainRepo.MethodTotalResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			method as method,
			COALESCE(SUM(amount), 0) as total,
			COUNT(id) as count
		FROM payments
		WHERE deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
		GROUP BY method
		ORDER BY total DESC
	`, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesByBrand(ctx context.Context, start, end time.Time) ([]domainRepo.BrandSalesResult, error) {
	var results []domainRepo.BrandSalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id as brand_id,
			COALESCE(b.name, '') as brand_name,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.total), 0) as revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id AND p.deleted_at IS NULL
		JOIN sales s ON s.id = si.sale_id AND s.deleted_at IS NULL
		LEFT JOIN brands b ON b.id = p.brand_id AND b.deleted_at IS NULL
		WHERE si.deleted_at IS NULL
		AND s.created_at >= ? AND s.created_at < ?
		GROUP BY b.id, b.name
		ORDER BY revenue DESC
	`, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CountLowStockProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("quantity <= quantity_alert").
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountOverdueSales(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("amount_paid < total_amount").
		Where("due_date IS NOT NULL AND due_date < ?", cutoff).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountSalesBefore(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("created_at < ?", t).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) GetPaidMismatches(ctx context.Context, limit int) ([]domainRepo.PaidMismatchResult, error) {
	var results []domainRepo.PaidMismatchResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id as sale_id,
			s.invoice_no as invoice_no,
			s.customer_phone as customer_phone,
			s.amount_paid as amount_paid,
			COALESCE((
				SELECT SUM(p.amount) FROM payments p
				WHERE p.sale_id = s.id AND p.deleted_at IS NULL
			), 0) as payment_sum
		FROM sales s
		WHERE s.deleted_at IS NULL
		AND s.amount_paid <> COALESCE((
			SELECT SUM(p.amount) FROM payments p
			WHERE p.sale_id = s.id AND p.deleted_at IS NULL
		), 0)
		ORDER BY s.created_at DESC
		LIMIT ?
	`, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
