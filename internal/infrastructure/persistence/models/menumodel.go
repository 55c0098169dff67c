package models

import (
	"time"

	"gorm.io/datatypes"

	"mealplan/internal/shared/constants"
)

type MonthlyMenuModel struct {
	ID          string `gorm:"primaryKey;size:40"`
	TenantID    string `gorm:"size:64;not null;index"`
	ProgramID   string `gorm:"size:40;not null;uniqueIndex:idx_menu_program_month,priority:1"`
	Year        int    `gorm:"not null;uniqueIndex:idx_menu_program_month,priority:2"`
	Month       int    `gorm:"not null;uniqueIndex:idx_menu_program_month,priority:3"`
	Status      string `gorm:"size:20;not null;default:'draft'"`
	Version     int    `gorm:"not null;default:1"`
	FinalizedAt *time.Time
	Days        []MenuDayModel `gorm:"foreignKey:MonthlyMenuID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MonthlyMenuModel) TableName() string {
	return constants.TableMonthlyMenus
}

// MenuDayModel keeps the meal type to assignment map as a JSON object.
type MenuDayModel struct {
	ID            uint           `gorm:"primaryKey"`
	MonthlyMenuID string         `gorm:"size:40;not null;uniqueIndex:idx_menu_day,priority:1"`
	Date          time.Time      `gorm:"type:date;not null;uniqueIndex:idx_menu_day,priority:2"`
	Assignments   datatypes.JSON `gorm:"not null"`
}

func (MenuDayModel) TableName() string {
	return constants.TableMenuDays
}

// AssignmentJSON is the stored shape of one menu slot.
type AssignmentJSON struct {
	MealItemID           string `json:"meal_item_id"`
	MealName             string `json:"meal_name,omitempty"`
	UsedVeganAlternative bool   `json:"used_vegan_alternative,omitempty"`
}
