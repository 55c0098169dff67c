package db

import (
	"time"

	"gorm.io/gorm"
)

// ForTenant restricts a query to rows owned by tenantID.
//
//	db.Model(&models.ProgramModel{}).Scopes(db.ForTenant(tenantID)).Find(&rows)
func ForTenant(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// DateBetween filters column to the inclusive range [start, end].
func DateBetween(column string, start, end time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" <= ?", start, end)
	}
}
