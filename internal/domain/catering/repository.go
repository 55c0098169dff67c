package catering

import (
	"context"

	"mealplan/internal/domain/cacfp"
)

// ProgramRepository reads programs scoped to a tenant. Getters return
// (nil, nil) when the record is missing or owned by another tenant.
type ProgramRepository interface {
	Create(ctx context.Context, program *Program) error
	GetByID(ctx context.Context, tenantID, programID string) (*Program, error)
	ListActive(ctx context.Context, tenantID string) ([]*Program, error)
}

type FoodComponentRepository interface {
	Create(ctx context.Context, food *FoodComponent) error
	ListByTenant(ctx context.Context, tenantID string) ([]*FoodComponent, error)
}

// MealItemRepository returns meal items with their component sets loaded.
type MealItemRepository interface {
	Create(ctx context.Context, item *MealItem) error
	GetByID(ctx context.Context, tenantID, mealID string) (*MealItem, error)
	ListByMealTypes(ctx context.Context, tenantID string, mealTypes []cacfp.MealType) ([]*MealItem, error)
}
