package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"mealplan/internal/shared/constants"
)

type InvoiceModel struct {
	ID            string          `gorm:"primaryKey;size:40"`
	TenantID      string          `gorm:"size:64;not null;uniqueIndex:idx_invoice_tenant_number,priority:1"`
	ProgramID     string          `gorm:"size:40;not null;index:idx_invoice_program_period,priority:1"`
	MonthlyMenuID *string         `gorm:"size:40;index"`
	InvoiceNumber string          `gorm:"size:32;not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	PeriodStart   time.Time       `gorm:"type:date;not null;index:idx_invoice_program_period,priority:2"`
	PeriodEnd     time.Time       `gorm:"type:date;not null"`
	LineItems     datatypes.JSON  `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency      string          `gorm:"size:3;not null;default:'USD'"`
	Status        string          `gorm:"size:20;not null;default:'draft'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}

// LineItemJSON is the stored shape of one invoice line.
type LineItemJSON struct {
	ServiceDate string          `json:"service_date"`
	MealsByType map[string]int  `json:"meals_by_type"`
	MealCount   int             `json:"meal_count"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}
