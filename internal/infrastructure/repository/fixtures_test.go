package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/logger"
)

const testTenant = "tenant-1"

func testProgram(id, prefix string) *catering.Program {
	end := biztime.Date(2024, time.December, 31)
	return &catering.Program{
		ID:          id,
		TenantID:    testTenant,
		Name:        "Program " + prefix,
		AgeGroupID:  4,
		ServiceDays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		MealTypes:   []cacfp.MealType{cacfp.MealTypeLunch, cacfp.MealTypeBreakfast},
		Dietary: catering.DietaryPolicy{
			VeganDays: []time.Weekday{time.Friday},
		},
		InvoicePrefix: prefix,
		PricePerMeal:  decimal.RequireFromString("3.25"),
		Enrollment:    12,
		StartDate:     biztime.Date(2024, time.January, 1),
		EndDate:       &end,
		Holidays: []catering.Holiday{
			{Date: biztime.Date(2024, time.July, 4), Description: "Independence Day"},
			{Date: biztime.Date(2024, time.April, 15), Description: "Spring break"},
		},
		Active: true,
	}
}

func mustCreateProgram(t *testing.T, gdb *gorm.DB, p *catering.Program) {
	t.Helper()
	require.NoError(t, NewProgramRepository(gdb, logger.NewNopLogger()).Create(context.Background(), p))
}

func lunchDay(day int, mealID string) menu.MenuDay {
	d := menu.NewMenuDay(biztime.Date(2024, time.April, day))
	d.Assignments[cacfp.MealTypeLunch] = menu.Assignment{MealItemID: mealID, MealName: "Meal " + mealID}
	return d
}

func aprilMenu(t *testing.T, id, programID string, days ...menu.MenuDay) *menu.MonthlyMenu {
	t.Helper()
	m, err := menu.NewMonthlyMenu(id, testTenant, programID, 2024, time.April)
	require.NoError(t, err)
	require.NoError(t, m.ReplaceDays(days))
	return m
}
