// Package models holds the gorm persistence models.
package models

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&AgeGroupModel{},
		&ComponentTypeModel{},
		&PortionRuleModel{},
		&FoodComponentModel{},
		&MealItemModel{},
		&MealComponentModel{},
		&ProgramModel{},
		&HolidayModel{},
		&MonthlyMenuModel{},
		&MenuDayModel{},
		&InvoiceModel{},
	}
}
