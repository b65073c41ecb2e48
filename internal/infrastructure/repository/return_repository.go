package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	domainRepo "github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
)

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a new return repository
func NewReturnRepository(db *gorm.DB) domainRepo.ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *entity.Return) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

func (r *returnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Return, error) {
	var ret entity.Return
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *returnRepository) Update(ctx context.Context, ret *entity.Return) error {
	return r.db.WithContext(ctx).Save(ret).Error
}

func (r *returnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Return{}, "id = ?", id).Error
}

func (r *returnRepository) List(ctx context.Context, params *domainRepo.ReturnFilterParams) ([]entity.Return, int64, error) {
	var returns []entity.Return
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Return{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("return_no ILIKE ? OR customer_phone ILIKE ?", like, like)
	}

	if params.Type != nil {
		query = query.Where("return_type = ?", *params.Type)
	}

	if params.CustomerPhone != "" {
		query = query.Where("customer_phone = ?", params.CustomerPhone)
	}

	query = query.Scopes(DateRange(params.StartDate, params.EndDate))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&returns).Error

	return returns, total, err
}

func (r *returnRepository) ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Return, error) {
	var returns []entity.Return
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Preload("Items.Product").
		Order("created_at ASC, id ASC").
		Find(&returns).Error
	return returns, err
}

func (r *returnRepository) ListByCustomerPhone(ctx context.Context, phone string, from, to *time.Time) ([]entity.Return, error) {
	var returns []entity.Return
	err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Scopes(DateRange(from, to)).
		Preload("Items.Product").
		Order("created_at ASC, id ASC").
		Find(&returns).Error
	return returns, err
}

type returnItemRepository struct {
	db *gorm.DB
}

// NewReturnItemRepository creates a new return item repository
func NewReturnItemRepository(db *gorm.DB) domainRepo.ReturnItemRepository {
	return &returnItemRepository{db: db}
}

func (r *returnItemRepository) CreateBatch(ctx context.Context, items []entity.ReturnItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *returnItemRepository) DeleteByReturnID(ctx context.Context, returnID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ReturnItem{}, "return_id = ?", returnID).Error
}
