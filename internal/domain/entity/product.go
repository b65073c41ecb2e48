package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a paint product in the inventory. Quantity counts
// cans/packs of the given size, not litres.
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BrandID        *uuid.UUID      `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Slug           string          `gorm:"size:255;unique;not null" json:"slug"`
	Code           string          `gorm:"size:100;unique;not null" json:"code"`
	ColorCode      string          `gorm:"size:50" json:"color_code"`
	PackSizeLitres decimal.Decimal `gorm:"type:decimal(6,2);default:0" json:"pack_size_litres"`
	Quantity       int             `gorm:"default:0" json:"quantity"`
	QuantityAlert  int             `gorm:"default:0" json:"quantity_alert"`
	BuyingPrice    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"buying_price"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"selling_price"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the quantity has fallen to the alert level
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.QuantityAlert
}

// Brand represents a paint brand or manufacturer line
type Brand struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:BrandID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new brand
func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}
