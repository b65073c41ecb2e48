package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
)

// Return represents goods returned by a customer, either individual items
// or a whole bill. SaleID is optional: legacy returns imported from the
// desktop app sometimes reference sales that no longer exist.
type Return struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID        *uuid.UUID      `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	ReturnNo      string          `gorm:"size:100;unique;not null" json:"return_no"`
	CustomerPhone string          `gorm:"size:20;index" json:"customer_phone"`
	TotalRefund   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_refund"`
	ReturnType    enum.ReturnType `gorm:"default:0" json:"return_type"`
	Reason        string          `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User  User         `gorm:"foreignKey:UserID" json:"-"`
	Sale  *Sale        `gorm:"foreignKey:SaleID" json:"-"`
	Items []ReturnItem `gorm:"foreignKey:ReturnID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return
func (r *Return) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Return model
func (Return) TableName() string {
	return "sale_returns"
}

// ReturnItem represents a returned line item
type ReturnItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReturnID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"return_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Refund    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"refund"`
	Restock   bool            `gorm:"default:true" json:"restock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Return  Return  `gorm:"foreignKey:ReturnID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new return item
func (ri *ReturnItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReturnItem model
func (ReturnItem) TableName() string {
	return "sale_return_items"
}
