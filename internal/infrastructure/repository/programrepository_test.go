package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/infrastructure/persistence/testdb"
	"mealplan/internal/shared/biztime"
	apperrors "mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

func TestProgramRepository_RoundTrip(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProgramRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	want := testProgram("prg_1", "BC")
	require.NoError(t, repo.Create(ctx, want))

	got, err := repo.GetByID(ctx, testTenant, "prg_1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.ServiceDays, got.ServiceDays)
	assert.Equal(t, []time.Weekday{time.Friday}, got.Dietary.VeganDays)
	assert.ElementsMatch(t, want.MealTypes, got.MealTypes)
	assert.Equal(t, []cacfp.MealType{cacfp.MealTypeBreakfast, cacfp.MealTypeLunch}, got.OrderedMealTypes())
	assert.True(t, want.PricePerMeal.Equal(got.PricePerMeal))
	assert.Equal(t, 12, got.Enrollment)
	require.NotNil(t, got.EndDate)
	assert.True(t, biztime.Date(2024, time.December, 31).Equal(*got.EndDate))

	require.Len(t, got.Holidays, 2)
	assert.True(t, got.IsHoliday(biztime.Date(2024, time.April, 15)))
	// holidays come back in date order
	assert.Equal(t, "Spring break", got.Holidays[0].Description)
}

func TestProgramRepository_TenantScope(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProgramRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testProgram("prg_1", "BC")))

	got, err := repo.GetByID(ctx, "tenant-2", "prg_1")
	require.NoError(t, err)
	assert.Nil(t, got)

	missing, err := repo.GetByID(ctx, testTenant, "prg_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProgramRepository_PrefixUniquePerTenant(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProgramRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testProgram("prg_1", "BC")))

	err := repo.Create(ctx, testProgram("prg_2", "BC"))
	assert.True(t, apperrors.IsConflictError(err), "got %v", err)

	other := testProgram("prg_3", "BC")
	other.TenantID = "tenant-2"
	assert.NoError(t, repo.Create(ctx, other))
}

func TestProgramRepository_CreateValidates(t *testing.T) {
	repo := NewProgramRepository(testdb.New(t), logger.NewNopLogger())
	p := testProgram("prg_1", "bad prefix")

	err := repo.Create(context.Background(), p)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestProgramRepository_ListActive(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewProgramRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProgram("prg_b", "BB")))
	require.NoError(t, repo.Create(ctx, testProgram("prg_a", "AA")))
	inactive := testProgram("prg_c", "CC")
	inactive.Active = false
	require.NoError(t, repo.Create(ctx, inactive))

	programs, err := repo.ListActive(ctx, testTenant)
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "prg_a", programs[0].ID)
	assert.Equal(t, "prg_b", programs[1].ID)
	assert.Len(t, programs[0].Holidays, 2)
}
