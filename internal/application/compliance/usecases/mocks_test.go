package usecases

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
)

const (
	testTenant   = "tenant-1"
	ageChild3to5 = 4

	ctMilk      = 1
	ctMeat      = 2
	ctGrain     = 3
	ctVegetable = 4
	ctFruit     = 5
)

type mockMealItemRepository struct {
	CreateFunc          func(ctx context.Context, item *catering.MealItem) error
	GetByIDFunc         func(ctx context.Context, tenantID, mealID string) (*catering.MealItem, error)
	ListByMealTypesFunc func(ctx context.Context, tenantID string, mealTypes []cacfp.MealType) ([]*catering.MealItem, error)
}

func (m *mockMealItemRepository) Create(ctx context.Context, item *catering.MealItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *mockMealItemRepository) GetByID(ctx context.Context, tenantID, mealID string) (*catering.MealItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, mealID)
	}
	return nil, nil
}

func (m *mockMealItemRepository) ListByMealTypes(ctx context.Context, tenantID string, mealTypes []cacfp.MealType) ([]*catering.MealItem, error) {
	if m.ListByMealTypesFunc != nil {
		return m.ListByMealTypesFunc(ctx, tenantID, mealTypes)
	}
	return nil, nil
}

type mockCatalogSource struct {
	LoadFunc func(ctx context.Context) (*cacfp.Catalog, error)
	calls    atomic.Int32
}

func (m *mockCatalogSource) Load(ctx context.Context) (*cacfp.Catalog, error) {
	m.calls.Add(1)
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, nil
}

func q(s string, u cacfp.Unit) cacfp.Quantity {
	return cacfp.NewQuantity(decimal.RequireFromString(s), u)
}

func testCatalog(t *testing.T) *cacfp.Catalog {
	t.Helper()
	c, err := cacfp.NewCatalog(
		[]cacfp.AgeGroup{{ID: ageChild3to5, Label: "Child 3-5 years", MinMonths: 36, SortOrder: 4}},
		[]cacfp.ComponentType{
			{ID: ctMilk, Label: "Milk", SortOrder: 1},
			{ID: ctMeat, Label: "Meat/Meat Alternate", SortOrder: 2},
			{ID: ctGrain, Label: "Grain", SortOrder: 3},
			{ID: ctVegetable, Label: "Vegetable", SortOrder: 4},
			{ID: ctFruit, Label: "Fruit", SortOrder: 5},
		},
		[]cacfp.PortionRule{
			{AgeGroupID: ageChild3to5, MealType: cacfp.MealTypeLunch, ComponentTypeID: ctMilk, Minimum: q("6", cacfp.UnitFluidOunce)},
			{AgeGroupID: ageChild3to5, MealType: cacfp.MealTypeLunch, ComponentTypeID: ctMeat, Minimum: q("1.5", cacfp.UnitOunceEquivalent)},
			{AgeGroupID: ageChild3to5, MealType: cacfp.MealTypeLunch, ComponentTypeID: ctGrain, Minimum: q("0.5", cacfp.UnitOunceEquivalent)},
			{AgeGroupID: ageChild3to5, MealType: cacfp.MealTypeLunch, ComponentTypeID: ctVegetable, Minimum: q("0.25", cacfp.UnitCup)},
			{AgeGroupID: ageChild3to5, MealType: cacfp.MealTypeLunch, ComponentTypeID: ctFruit, Minimum: q("0.25", cacfp.UnitCup)},
		},
	)
	require.NoError(t, err)
	return c
}

func food(name string, ct int, u cacfp.Unit, vegan bool) catering.FoodComponent {
	return catering.FoodComponent{
		ID:              "fc_" + name,
		TenantID:        testTenant,
		Name:            name,
		ComponentTypeID: ct,
		PortionSize:     decimal.NewFromInt(1),
		Unit:            u,
		IsVegan:         vegan,
	}
}

func portion(f catering.FoodComponent, amount string) catering.Portion {
	return catering.Portion{Food: f, Quantity: decimal.RequireFromString(amount)}
}

// chickenLunch lacks a vegetable; its vegan alternative is complete.
func chickenLunch() *catering.MealItem {
	return &catering.MealItem{
		ID:       "meal_chicken",
		TenantID: testTenant,
		Name:     "Chicken Plate",
		MealType: cacfp.MealTypeLunch,
		Components: []catering.Portion{
			portion(food("Milk", ctMilk, cacfp.UnitFluidOunce, false), "6"),
			portion(food("Chicken", ctMeat, cacfp.UnitOunceEquivalent, false), "1.5"),
			portion(food("Rice", ctGrain, cacfp.UnitOunceEquivalent, true), "0.5"),
			portion(food("Apple", ctFruit, cacfp.UnitCup, true), "0.25"),
		},
		VeganAlternative: []catering.Portion{
			portion(food("Soy Milk", ctMilk, cacfp.UnitFluidOunce, true), "6"),
			portion(food("Beans", ctMeat, cacfp.UnitOunceEquivalent, true), "1.5"),
			portion(food("Rice", ctGrain, cacfp.UnitOunceEquivalent, true), "0.5"),
			portion(food("Carrots", ctVegetable, cacfp.UnitCup, true), "0.25"),
			portion(food("Apple", ctFruit, cacfp.UnitCup, true), "0.25"),
		},
	}
}
