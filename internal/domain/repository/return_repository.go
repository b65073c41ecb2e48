package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// ReturnRepository defines the interface for return data operations
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.Return) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Return, error)
	Update(ctx context.Context, ret *entity.Return) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ReturnFilterParams) ([]entity.Return, int64, error)
	ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Return, error)
	// ListByCustomerPhone returns every live return for a customer with
	// items preloaded, oldest first. This is the return collection of a
	// statement snapshot.
	ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Return, error)
}

// ReturnFilterParams contains filtering parameters for return queries
type ReturnFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Type          *enum.ReturnType
	CustomerPhone string
	StartDate     *time.Time
	EndDate       *time.Time
}

// ReturnItemRepository defines the interface for returned line item operations
type ReturnItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.ReturnItem) error
	DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error
}
