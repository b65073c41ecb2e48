package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/enum"
)

// Sale represents a bill raised at the counter. A sale with IsManualBalance
// set was entered directly as an opening balance or cash loan and has no
// point-of-sale line items.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceNo       string             `gorm:"size:100;unique;not null" json:"invoice_no"`
	CustomerPhone   string             `gorm:"size:20;not null;index" json:"customer_phone"`
	CustomerName    string             `gorm:"size:255" json:"customer_name"`
	TotalAmount     decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	AmountPaid      decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"amount_paid"`
	PaymentStatus   enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
	IsManualBalance bool               `gorm:"default:false" json:"is_manual_balance"`
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Outstanding returns the unpaid portion of the sale, floored at zero.
// AmountPaid can exceed TotalAmount on legacy rows.
func (s *Sale) Outstanding() decimal.Decimal {
	out := s.TotalAmount.Sub(s.AmountPaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// RecalcPaymentStatus derives PaymentStatus from AmountPaid and TotalAmount.
// Callers must invoke this whenever AmountPaid changes.
func (s *Sale) RecalcPaymentStatus() {
	switch {
	case s.AmountPaid.LessThanOrEqual(decimal.Zero):
		s.PaymentStatus = enum.PaymentStatusUnpaid
	case s.AmountPaid.LessThan(s.TotalAmount):
		s.PaymentStatus = enum.PaymentStatusPartial
	default:
		s.PaymentStatus = enum.PaymentStatusPaid
	}
}

// SaleItem represents a line item on a sale
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
