package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"mealplan/internal/shared/constants"
)

type FoodComponentModel struct {
	ID              string          `gorm:"primaryKey;size:40"`
	TenantID        string          `gorm:"size:64;not null;index"`
	Name            string          `gorm:"size:255;not null"`
	ComponentTypeID int             `gorm:"not null;index"`
	PortionSize     decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Unit            string          `gorm:"size:10;not null"`
	IsVegan         bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (FoodComponentModel) TableName() string {
	return constants.TableFoodComponents
}

type MealItemModel struct {
	ID         string               `gorm:"primaryKey;size:40"`
	TenantID   string               `gorm:"size:64;not null;index:idx_meal_tenant_type,priority:1"`
	Name       string               `gorm:"size:255;not null"`
	MealType   string               `gorm:"size:20;not null;index:idx_meal_tenant_type,priority:2"`
	Components []MealComponentModel `gorm:"foreignKey:MealItemID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (MealItemModel) TableName() string {
	return constants.TableMealItems
}

// MealComponentModel links a meal to a food. IsAlternative rows form the
// vegan substitution set.
type MealComponentModel struct {
	ID              uint               `gorm:"primaryKey"`
	MealItemID      string             `gorm:"size:40;not null;index"`
	FoodComponentID string             `gorm:"size:40;not null;index"`
	Food            FoodComponentModel `gorm:"foreignKey:FoodComponentID"`
	Quantity        decimal.Decimal    `gorm:"type:decimal(10,3);not null"`
	IsAlternative   bool               `gorm:"not null;default:false"`
	Position        int                `gorm:"not null;default:0"`
}

func (MealComponentModel) TableName() string {
	return constants.TableMealItemComponents
}

// ProgramModel stores weekday and meal type sets as JSON arrays.
type ProgramModel struct {
	ID                string          `gorm:"primaryKey;size:40"`
	TenantID          string          `gorm:"size:64;not null;uniqueIndex:idx_program_tenant_prefix,priority:1"`
	Name              string          `gorm:"size:255;not null"`
	AgeGroupID        int             `gorm:"not null"`
	ServiceDays       datatypes.JSON  `gorm:"not null"`
	MealTypes         datatypes.JSON  `gorm:"not null"`
	InvoicePrefix     string          `gorm:"size:10;not null;uniqueIndex:idx_program_tenant_prefix,priority:2"`
	PricePerMeal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Enrollment        int             `gorm:"not null;default:1"`
	VeganRequired     bool            `gorm:"not null;default:false"`
	VeganDays         datatypes.JSON
	StartDate         time.Time      `gorm:"type:date;not null"`
	EndDate           *time.Time     `gorm:"type:date"`
	LastInvoiceNumber int64          `gorm:"not null;default:0"`
	Active            bool           `gorm:"not null;index"`
	Holidays          []HolidayModel `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ProgramModel) TableName() string {
	return constants.TablePrograms
}

type HolidayModel struct {
	ID          uint      `gorm:"primaryKey"`
	ProgramID   string    `gorm:"size:40;not null;uniqueIndex:idx_holiday_program_date,priority:1"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_holiday_program_date,priority:2"`
	Description string    `gorm:"size:255"`
}

func (HolidayModel) TableName() string {
	return constants.TableProgramHolidays
}
