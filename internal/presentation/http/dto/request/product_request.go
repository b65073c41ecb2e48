package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	BrandID        *uuid.UUID      `json:"brand_id"`
	Name           string          `json:"name" binding:"required,min=2,max=255"`
	Code           string          `json:"code" binding:"omitempty,max=100"`
	ColorCode      string          `json:"color_code" binding:"omitempty,max=100"`
	PackSizeLitres decimal.Decimal `json:"pack_size_litres"`
	Quantity       int             `json:"quantity" binding:"min=0"`
	QuantityAlert  int             `json:"quantity_alert" binding:"min=0"`
	BuyingPrice    decimal.Decimal `json:"buying_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Notes          *string         `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	BrandID        *uuid.UUID       `json:"brand_id"`
	Name           *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Code           *string          `json:"code" binding:"omitempty,min=1,max=100"`
	ColorCode      *string          `json:"color_code" binding:"omitempty,max=100"`
	PackSizeLitres *decimal.Decimal `json:"pack_size_litres"`
	Quantity       *int             `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert  *int             `json:"quantity_alert" binding:"omitempty,min=0"`
	BuyingPrice    *decimal.Decimal `json:"buying_price"`
	SellingPrice   *decimal.Decimal `json:"selling_price"`
	Notes          *string          `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	BrandID   string `form:"brand_id"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
