package service

import (
	"context"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
)

// BrandService handles paint brand operations
type BrandService struct {
	brandRepo repository.BrandRepository
}

// NewBrandService creates a new brand service
func NewBrandService(brandRepo repository.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// CreateBrandInput represents the create brand input
type CreateBrandInput struct {
	Name string
}

// CreateBrand creates a new brand
func (s *BrandService) CreateBrand(ctx context.Context, input *CreateBrandInput) (*entity.Brand, error) {
	slug := utils.Slugify(input.Name)

	// Check if slug already exists
	existing, err := s.brandRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Brand with this name already exists")
	}

	brand := &entity.Brand{
		Name: input.Name,
		Slug: slug,
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// GetBrand retrieves a brand by slug
func (s *BrandService) GetBrand(ctx context.Context, slug string) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, apperror.NewNotFoundError("Brand")
	}
	return brand, nil
}

// ListBrands lists brands with optional name search
func (s *BrandService) ListBrands(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Brand], error) {
	brands, total, err := s.brandRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(brands, pag), nil
}

// UpdateBrandInput represents the update brand input
type UpdateBrandInput struct {
	BrandSlug string
	Name      string
}

// UpdateBrand updates a brand
func (s *BrandService) UpdateBrand(ctx context.Context, input *UpdateBrandInput) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetBySlug(ctx, input.BrandSlug)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, apperror.NewNotFoundError("Brand")
	}

	newSlug := utils.Slugify(input.Name)
	if newSlug != brand.Slug {
		existing, err := s.brandRepo.GetBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != brand.ID {
			return nil, apperror.NewConflictError("Brand with this name already exists")
		}
		brand.Slug = newSlug
	}

	brand.Name = input.Name

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// DeleteBrand deletes a brand. Products that referenced it keep their rows
// with the brand link cleared by the foreign key.
func (s *BrandService) DeleteBrand(ctx context.Context, slug string) error {
	brand, err := s.brandRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if brand == nil {
		return apperror.NewNotFoundError("Brand")
	}

	return s.brandRepo.Delete(ctx, brand.ID)
}
