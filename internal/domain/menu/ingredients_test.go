package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/biztime"
)

func TestWeeklyIngredients(t *testing.T) {
	m, err := NewMonthlyMenu("mnu_1", tenantID, "prg_1", 2024, time.April)
	require.NoError(t, err)

	alt := lunchWithVeganAlt("l02")
	meals := map[string]*catering.MealItem{
		"l01": lunch("l01"),
		"l02": alt,
		"b01": breakfast("b01"),
	}

	monday := NewMenuDay(biztime.Date(2024, time.April, 1))
	monday.Assignments[cacfp.MealTypeLunch] = Assignment{MealItemID: "l01"}
	monday.Assignments[cacfp.MealTypeBreakfast] = Assignment{MealItemID: "b01"}
	friday := NewMenuDay(biztime.Date(2024, time.April, 5))
	friday.Assignments[cacfp.MealTypeLunch] = Assignment{MealItemID: "l02", UsedVeganAlternative: true}
	nextWeek := NewMenuDay(biztime.Date(2024, time.April, 8))
	nextWeek.Assignments[cacfp.MealTypeLunch] = Assignment{MealItemID: "unknown"}

	require.NoError(t, m.ReplaceDays([]MenuDay{monday, friday, nextWeek}))

	weeks := WeeklyIngredients(m, meals)
	require.Len(t, weeks, 2)

	first := weeks[0]
	assert.Equal(t, biztime.Date(2024, time.April, 1), first.WeekStart)
	assert.Len(t, first.Dates, 2)
	assert.Contains(t, first.Ingredients, "Soy Milk")
	assert.Contains(t, first.Ingredients, "Chicken Breast")
	assert.Contains(t, first.Ingredients, "Whole Grain Toast")
	assert.IsIncreasing(t, first.Ingredients)
	assert.NotContains(t, first.ByMealType[cacfp.MealTypeBreakfast], "Pinto Beans")
	assert.Contains(t, first.ByMealType[cacfp.MealTypeLunch], "Pinto Beans")

	assert.Equal(t, biztime.Date(2024, time.April, 8), weeks[1].WeekStart)
	assert.Empty(t, weeks[1].Ingredients)
}
