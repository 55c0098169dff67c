package menu

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/biztime"
)

const (
	tenantID   = "tenant-1"
	ageChild35 = 4

	ctMilk      = 1
	ctMeat      = 2
	ctGrain     = 3
	ctVegetable = 4
	ctFruit     = 5
)

func q(s string, u cacfp.Unit) cacfp.Quantity {
	return cacfp.NewQuantity(decimal.RequireFromString(s), u)
}

func testEvaluator(t *testing.T) *cacfp.Evaluator {
	t.Helper()
	rule := func(mt cacfp.MealType, ct int, min string, u cacfp.Unit) cacfp.PortionRule {
		return cacfp.PortionRule{AgeGroupID: ageChild35, MealType: mt, ComponentTypeID: ct, Minimum: q(min, u)}
	}
	catalog, err := cacfp.NewCatalog(
		[]cacfp.AgeGroup{{ID: ageChild35, Label: "Child 3-5 years", MinMonths: 36, SortOrder: 4}},
		[]cacfp.ComponentType{
			{ID: ctMilk, Label: "Milk", SortOrder: 1},
			{ID: ctMeat, Label: "Meat/Meat Alternate", SortOrder: 2},
			{ID: ctGrain, Label: "Grain", SortOrder: 3},
			{ID: ctVegetable, Label: "Vegetable", SortOrder: 4},
			{ID: ctFruit, Label: "Fruit", SortOrder: 5},
		},
		[]cacfp.PortionRule{
			rule(cacfp.MealTypeBreakfast, ctMilk, "6", cacfp.UnitFluidOunce),
			rule(cacfp.MealTypeBreakfast, ctGrain, "0.5", cacfp.UnitOunceEquivalent),
			rule(cacfp.MealTypeBreakfast, ctFruit, "0.5", cacfp.UnitCup),
			rule(cacfp.MealTypeLunch, ctMilk, "6", cacfp.UnitFluidOunce),
			rule(cacfp.MealTypeLunch, ctMeat, "1.5", cacfp.UnitOunceEquivalent),
			rule(cacfp.MealTypeLunch, ctGrain, "0.5", cacfp.UnitOunceEquivalent),
			rule(cacfp.MealTypeLunch, ctVegetable, "0.25", cacfp.UnitCup),
			rule(cacfp.MealTypeLunch, ctFruit, "0.25", cacfp.UnitCup),
		},
	)
	require.NoError(t, err)
	return cacfp.NewEvaluator(catalog)
}

func testFood(name string, ct int, u cacfp.Unit, vegan bool) catering.FoodComponent {
	return catering.FoodComponent{
		ID:              "fc_" + name,
		TenantID:        tenantID,
		Name:            name,
		ComponentTypeID: ct,
		PortionSize:     decimal.NewFromInt(1),
		Unit:            u,
		IsVegan:         vegan,
	}
}

var (
	foodMilk    = testFood("Whole Milk", ctMilk, cacfp.UnitFluidOunce, false)
	foodSoyMilk = testFood("Soy Milk", ctMilk, cacfp.UnitFluidOunce, true)
	foodChicken = testFood("Chicken Breast", ctMeat, cacfp.UnitOunceEquivalent, false)
	foodBeans   = testFood("Pinto Beans", ctMeat, cacfp.UnitOunceEquivalent, true)
	foodRice    = testFood("Brown Rice", ctGrain, cacfp.UnitOunceEquivalent, true)
	foodToast   = testFood("Whole Grain Toast", ctGrain, cacfp.UnitOunceEquivalent, true)
	foodCarrots = testFood("Carrots", ctVegetable, cacfp.UnitCup, true)
	foodApple   = testFood("Apple", ctFruit, cacfp.UnitCup, true)
)

func por(f catering.FoodComponent, amount string) catering.Portion {
	return catering.Portion{Food: f, Quantity: decimal.RequireFromString(amount)}
}

func lunch(id string) *catering.MealItem {
	return &catering.MealItem{
		ID:       id,
		TenantID: tenantID,
		Name:     "Lunch " + id,
		MealType: cacfp.MealTypeLunch,
		Components: []catering.Portion{
			por(foodMilk, "6"), por(foodChicken, "1.5"), por(foodRice, "0.5"),
			por(foodCarrots, "0.25"), por(foodApple, "0.25"),
		},
	}
}

func lunchWithVeganAlt(id string) *catering.MealItem {
	m := lunch(id)
	m.VeganAlternative = []catering.Portion{
		por(foodSoyMilk, "6"), por(foodBeans, "1.5"), por(foodRice, "0.5"),
		por(foodCarrots, "0.25"), por(foodApple, "0.25"),
	}
	return m
}

func breakfast(id string) *catering.MealItem {
	return &catering.MealItem{
		ID:       id,
		TenantID: tenantID,
		Name:     "Breakfast " + id,
		MealType: cacfp.MealTypeBreakfast,
		Components: []catering.Portion{
			por(foodMilk, "6"), por(foodToast, "0.5"), por(foodApple, "0.5"),
		},
	}
}

func pool(lunches, breakfasts int) []*catering.MealItem {
	var items []*catering.MealItem
	for i := 1; i <= lunches; i++ {
		items = append(items, lunch(fmt.Sprintf("l%02d", i)))
	}
	for i := 1; i <= breakfasts; i++ {
		items = append(items, breakfast(fmt.Sprintf("b%02d", i)))
	}
	return items
}

// brightCafe serves breakfast and lunch Monday to Friday. April 2024 has
// 22 weekdays; the 15th is a Monday holiday.
func brightCafe() *catering.Program {
	return &catering.Program{
		ID:            "prg_bright",
		TenantID:      tenantID,
		Name:          "Bright Café",
		AgeGroupID:    ageChild35,
		ServiceDays:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		MealTypes:     []cacfp.MealType{cacfp.MealTypeBreakfast, cacfp.MealTypeLunch},
		InvoicePrefix: "BC",
		PricePerMeal:  decimal.RequireFromString("3.50"),
		Enrollment:    1,
		StartDate:     biztime.Date(2024, time.January, 1),
		Holidays:      []catering.Holiday{{Date: biztime.Date(2024, time.April, 15)}},
		Active:        true,
	}
}
