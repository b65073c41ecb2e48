package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopSettings holds the shop profile and application preferences.
// Exactly one row exists; the repository creates it on first access.
type ShopSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Shop profile, printed on receipts and statements
	ShopName    string `gorm:"size:255;default:'AM Paints'" json:"shop_name"`
	Address     string `gorm:"type:text" json:"address"`
	Phone       string `gorm:"size:50" json:"phone"`
	Email       string `gorm:"size:255" json:"email"`
	ReceiptNote string `gorm:"type:text" json:"receipt_note"`

	// Formatting
	Currency   string `gorm:"size:10;default:'PKR'" json:"currency"`
	DateFormat string `gorm:"size:20;default:'DD/MM/YYYY'" json:"date_format"`

	// Alerts
	LowStockAlerts bool `gorm:"default:true" json:"low_stock_alerts"`
	OverdueAlerts  bool `gorm:"default:true" json:"overdue_alerts"`
	OverdueDays    int  `gorm:"default:30" json:"overdue_days"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *ShopSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}
