package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/request"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with filtering
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		LowStock:  filter.LowStock,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.BrandID != "" {
		brandID, err := uuid.Parse(filter.BrandID)
		if err == nil {
			params.BrandID = &brandID
		}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.BuyingPrice.IsNegative() || req.SellingPrice.IsNegative() {
		response.BadRequest(c, "Prices cannot be negative")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		BrandID:        req.BrandID,
		Name:           req.Name,
		Code:           req.Code,
		ColorCode:      req.ColorCode,
		PackSizeLitres: req.PackSizeLitres,
		Quantity:       req.Quantity,
		QuantityAlert:  req.QuantityAlert,
		BuyingPrice:    req.BuyingPrice,
		SellingPrice:   req.SellingPrice,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Product slug is required")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Product slug is required")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if (req.BuyingPrice != nil && req.BuyingPrice.IsNegative()) ||
		(req.SellingPrice != nil && req.SellingPrice.IsNegative()) {
		response.BadRequest(c, "Prices cannot be negative")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ProductSlug:    slug,
		BrandID:        req.BrandID,
		Name:           req.Name,
		Code:           req.Code,
		ColorCode:      req.ColorCode,
		PackSizeLitres: req.PackSizeLitres,
		Quantity:       req.Quantity,
		QuantityAlert:  req.QuantityAlert,
		BuyingPrice:    req.BuyingPrice,
		SellingPrice:   req.SellingPrice,
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product by slug
func (h *ProductHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Product slug is required")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), slug); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetLowStock handles getting low stock products
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// AdjustStock handles a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Product slug is required")
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), slug, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", product)
}

// Import handles bulk product import from an uploaded XLSX workbook.
// Expected columns: Name | Code | Brand | Color Code | Pack Size (L) |
// Quantity | Quantity Alert | Buying Price | Selling Price | Notes.
func (h *ProductHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		response.BadRequest(c, "File is not a valid XLSX workbook")
		return
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		response.BadRequest(c, "Could not read rows from workbook")
		return
	}

	// Drop trailing blank rows; sheets edited by hand usually have a few.
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) < 2 {
		response.BadRequest(c, "Workbook has no data rows")
		return
	}

	importRows := make([]service.ImportProductRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		importRows = append(importRows, service.ImportProductRow{
			Name:           cellAt(row, 0),
			Code:           cellAt(row, 1),
			BrandName:      cellAt(row, 2),
			ColorCode:      cellAt(row, 3),
			PackSizeLitres: decimalCell(row, 4),
			Quantity:       intCell(row, 5),
			QuantityAlert:  intCell(row, 6),
			BuyingPrice:    decimalCell(row, 7),
			SellingPrice:   decimalCell(row, 8),
			Notes:          cellAt(row, 9),
		})
	}

	result, err := h.productService.ImportProducts(c.Request.Context(), importRows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product import completed", result)
}

// cellAt reads a cell by index. excelize omits trailing empty cells, so rows
// can be shorter than the header row.
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func decimalCell(row []string, idx int) decimal.Decimal {
	d, err := decimal.NewFromString(cellAt(row, idx))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func intCell(row []string, idx int) int {
	n, err := strconv.Atoi(cellAt(row, idx))
	if err != nil {
		return 0
	}
	return n
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// BrandHandler handles brand-related HTTP requests
type BrandHandler struct {
	brandService *service.BrandService
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandService *service.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// List handles listing brands
func (h *BrandHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{
		Page:    1,
		PerPage: 50,
	}
	search := c.Query("search")

	result, err := h.brandService.ListBrands(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Brands retrieved successfully", result)
}

// Create handles creating a brand
func (h *BrandHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	brand, err := h.brandService.CreateBrand(c.Request.Context(), &service.CreateBrandInput{
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Brand created successfully", brand)
}

// Get handles getting a single brand
func (h *BrandHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Brand slug is required")
		return
	}

	brand, err := h.brandService.GetBrand(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Brand retrieved successfully", brand)
}

// Update handles updating a brand
func (h *BrandHandler) Update(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Brand slug is required")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	brand, err := h.brandService.UpdateBrand(c.Request.Context(), &service.UpdateBrandInput{
		BrandSlug: slug,
		Name:      req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Brand updated successfully", brand)
}

// Delete handles deleting a brand
func (h *BrandHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Brand slug is required")
		return
	}

	if err := h.brandService.DeleteBrand(c.Request.Context(), slug); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
