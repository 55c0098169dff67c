package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"mealplan/internal/shared/constants"
)

type AgeGroupModel struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Label     string `gorm:"size:100;not null;uniqueIndex"`
	MinMonths int    `gorm:"not null;default:0"`
	MaxMonths *int
	SortOrder int `gorm:"not null;default:0"`
}

func (AgeGroupModel) TableName() string {
	return constants.TableAgeGroups
}

type ComponentTypeModel struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Label     string `gorm:"size:100;not null;uniqueIndex"`
	SortOrder int    `gorm:"not null;default:0"`
}

func (ComponentTypeModel) TableName() string {
	return constants.TableComponentTypes
}

// PortionRuleModel is unique per (age group, meal type, component type).
type PortionRuleModel struct {
	ID              uint             `gorm:"primaryKey"`
	AgeGroupID      int              `gorm:"not null;uniqueIndex:idx_portion_rule_key,priority:1"`
	MealType        string           `gorm:"size:20;not null;uniqueIndex:idx_portion_rule_key,priority:2"`
	ComponentTypeID int              `gorm:"not null;uniqueIndex:idx_portion_rule_key,priority:3"`
	AlsoCounts      datatypes.JSON   `gorm:"column:also_counts"`
	MinimumAmount   decimal.Decimal  `gorm:"type:decimal(10,3);not null"`
	Unit            string           `gorm:"size:10;not null"`
	MaximumAmount   *decimal.Decimal `gorm:"type:decimal(10,3)"`
	Notes           string           `gorm:"size:255"`
}

func (PortionRuleModel) TableName() string {
	return constants.TablePortionRules
}
