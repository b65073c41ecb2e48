package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListWithCursor(ctx context.Context, params *SaleCursorFilterParams) ([]entity.Sale, error)
	// ListByCustomerPhone returns every live sale for a customer with
	// items preloaded, oldest first. This is the bill collection of a
	// statement snapshot.
	ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Sale, error)
	// GetDueSales returns unsettled sales whose due date has passed asOf.
	GetDueSales(ctx context.Context, asOf time.Time, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// ListOverdueUnsettled returns every unsettled sale older than the
	// cutoff, for the nightly overdue scan.
	ListOverdueUnsettled(ctx context.Context, cutoff time.Time) ([]entity.Sale, error)
	// SetPaidAmount updates the derived paid bookkeeping in one write.
	SetPaidAmount(ctx context.Context, id uuid.UUID, paid decimal.Decimal, status enum.PaymentStatus) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.PaymentStatus
	CustomerPhone string
	ManualOnly    bool
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}

// SaleCursorFilterParams contains cursor-based filtering for sale queries
type SaleCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Search        string
	Status        *enum.PaymentStatus
	CustomerPhone string
	StartDate     *time.Time
	EndDate       *time.Time
}

// SaleItemRepository defines the interface for sale line item operations
type SaleItemRepository interface {
	Create(ctx context.Context, item *entity.SaleItem) error
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
}
