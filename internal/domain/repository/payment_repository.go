package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error)
	// ListByCustomerPhone returns every live payment against the
	// customer's sales, oldest first. This is the payment collection of a
	// statement snapshot.
	ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Payment, error)
	// SumBySaleID totals the live payments recorded against one sale.
	// The sale's AmountPaid is resynced to this figure after every
	// payment write.
	SumBySaleID(ctx context.Context, saleID uuid.UUID) (decimal.Decimal, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Method     string
	SaleID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
