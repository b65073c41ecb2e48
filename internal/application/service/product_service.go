package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/apperror"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
	brandRepo   repository.BrandRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	BrandID        *uuid.UUID
	Name           string
	Code           string
	ColorCode      string
	PackSizeLitres decimal.Decimal
	Quantity       int
	QuantityAlert  int
	BuyingPrice    decimal.Decimal
	SellingPrice   decimal.Decimal
	Notes          *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	// Check if code already exists
	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	// Generate slug
	slug := utils.Slugify(input.Name)

	product := &entity.Product{
		BrandID:        input.BrandID,
		Name:           input.Name,
		Slug:           slug,
		Code:           code,
		ColorCode:      input.ColorCode,
		PackSizeLitres: input.PackSizeLitres,
		Quantity:       input.Quantity,
		QuantityAlert:  input.QuantityAlert,
		BuyingPrice:    input.BuyingPrice,
		SellingPrice:   input.SellingPrice,
		Notes:          input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductSlug    string
	BrandID        *uuid.UUID
	Name           *string
	Code           *string
	ColorCode      *string
	PackSizeLitres *decimal.Decimal
	Quantity       *int
	QuantityAlert  *int
	BuyingPrice    *decimal.Decimal
	SellingPrice   *decimal.Decimal
	Notes          *string
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, input.ProductSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Check if new code is unique
	if input.Code != nil && *input.Code != product.Code {
		existingProduct, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existingProduct != nil && existingProduct.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.ColorCode != nil {
		product.ColorCode = *input.ColorCode
	}
	if input.PackSizeLitres != nil {
		product.PackSizeLitres = *input.PackSizeLitres
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		product.BuyingPrice = *input.BuyingPrice
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns products at or below their alert quantity
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// AdjustStock applies a manual stock correction (stocktake, damage, supplier delivery).
// Delta can be negative; the adjustment fails if it would drive quantity below zero.
func (s *ProductService) AdjustStock(ctx context.Context, slug string, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, apperror.NewBadRequestError("Adjustment cannot be zero")
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if delta < 0 {
		ok, err := s.productRepo.AtomicDecrementQuantity(ctx, product.ID, -delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewConflictError("Adjustment would make stock negative")
		}
	} else {
		if err := s.productRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]int{product.ID: delta}); err != nil {
			return nil, err
		}
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	Name           string
	Code           string
	BrandName      string
	ColorCode      string
	PackSizeLitres decimal.Decimal
	Quantity       int
	QuantityAlert  int
	BuyingPrice    decimal.Decimal
	SellingPrice   decimal.Decimal
	Notes          string
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts validates and bulk-creates products from parsed import rows
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}
	var rowErrors []ImportRowError

	// Load brands for name-based matching
	brandMap := make(map[string]*uuid.UUID)
	brands, _, _ := s.brandRepo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 100}, "")
	for i := range brands {
		brandMap[strings.ToLower(brands[i].Name)] = &brands[i].ID
	}

	// Track codes seen in this import batch to detect duplicates within the file
	seenCodes := make(map[string]int) // code -> row number (1-indexed)

	var validProducts []entity.Product

	for i, row := range rows {
		rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

		// Validate required fields
		if strings.TrimSpace(row.Name) == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		// Auto-generate code if empty
		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = utils.GenerateProductCode()
		}

		// Check for duplicate code within the file
		if prevRow, exists := seenCodes[code]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", code, prevRow),
			})
			continue
		}

		// Check if code already exists in DB
		existingProduct, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "code", Message: "Error checking code: " + err.Error()})
			continue
		}
		if existingProduct != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Product code '%s' already exists", code),
			})
			continue
		}

		seenCodes[code] = rowNum

		// Generate slug with uniqueness suffix
		slug := utils.Slugify(row.Name) + "-" + strings.ToLower(uuid.New().String()[:8])

		// Match brand by name
		var brandID *uuid.UUID
		if row.BrandName != "" {
			if id, ok := brandMap[strings.ToLower(strings.TrimSpace(row.BrandName))]; ok {
				brandID = id
			}
		}

		product := entity.Product{
			BrandID:        brandID,
			Name:           strings.TrimSpace(row.Name),
			Slug:           slug,
			Code:           code,
			ColorCode:      strings.TrimSpace(row.ColorCode),
			PackSizeLitres: row.PackSizeLitres,
			Quantity:       row.Quantity,
			QuantityAlert:  row.QuantityAlert,
			BuyingPrice:    row.BuyingPrice,
			SellingPrice:   row.SellingPrice,
		}

		if row.Notes != "" {
			notes := row.Notes
			product.Notes = &notes
		}

		validProducts = append(validProducts, product)
	}

	// Batch create valid products
	if len(validProducts) > 0 {
		if err := s.productRepo.CreateBatch(ctx, validProducts); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import products: "+err.Error())
		}
	}

	result.Successful = len(validProducts)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}
