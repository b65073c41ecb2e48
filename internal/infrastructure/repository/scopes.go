package repository

import (
	"time"

	"gorm.io/gorm"
)

// DateRange returns a GORM scope filtering created_at to [from, to].
// Nil bounds are open ends.
func DateRange(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("created_at >= ?", *from)
		}
		if to != nil {
			db = db.Where("created_at <= ?", *to)
		}
		return db
	}
}

// Unsettled returns a GORM scope keeping sales that still owe money.
func Unsettled() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("amount_paid < total_amount")
	}
}

// Search returns a GORM scope applying a case-insensitive LIKE match on
// the given column. An empty term leaves the query unchanged.
func Search(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		return db.Where(column+" ILIKE ?", "%"+term+"%")
	}
}
