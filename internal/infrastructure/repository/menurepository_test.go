package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/menu"
	"mealplan/internal/infrastructure/persistence/testdb"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/db"
	apperrors "mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

func TestMenuRepository_CreateAndGet(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMenuRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	vegan := lunchDay(5, "meal_b")
	a := vegan.Assignments[cacfp.MealTypeLunch]
	a.UsedVeganAlternative = true
	vegan.Assignments[cacfp.MealTypeLunch] = a

	m := aprilMenu(t, "mnu_1", "prg_1", lunchDay(3, "meal_a"), lunchDay(1, "meal_a"), vegan)
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, testTenant, "mnu_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	days := got.Days()
	require.Len(t, days, 3)
	assert.True(t, biztime.Date(2024, time.April, 1).Equal(days[0].Date))
	assert.Equal(t, "meal_a", days[0].Assignments[cacfp.MealTypeLunch].MealItemID)
	assert.True(t, days[2].Assignments[cacfp.MealTypeLunch].UsedVeganAlternative)
	assert.Equal(t, menu.StatusDraft, got.Status())
	assert.Equal(t, 1, got.Version())

	byMonth, err := repo.GetByProgramMonth(ctx, testTenant, "prg_1", 2024, time.April)
	require.NoError(t, err)
	require.NotNil(t, byMonth)
	assert.Equal(t, "mnu_1", byMonth.ID())

	none, err := repo.GetByProgramMonth(ctx, testTenant, "prg_1", 2024, time.May)
	require.NoError(t, err)
	assert.Nil(t, none)

	foreign, err := repo.GetByID(ctx, "tenant-2", "mnu_1")
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestMenuRepository_OneMenuPerProgramMonth(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMenuRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, aprilMenu(t, "mnu_1", "prg_1")))
	err := repo.Create(ctx, aprilMenu(t, "mnu_2", "prg_1"))
	assert.True(t, apperrors.IsConflictError(err), "got %v", err)
}

func TestMenuRepository_UpdateReplacesDays(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMenuRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	m := aprilMenu(t, "mnu_1", "prg_1", lunchDay(1, "meal_a"), lunchDay(3, "meal_a"))
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, m.ReplaceDays([]menu.MenuDay{lunchDay(8, "meal_c")}))
	m.Finalize()
	require.NoError(t, repo.Update(ctx, m))
	assert.Equal(t, 2, m.Version())

	got, err := repo.GetByID(ctx, testTenant, "mnu_1")
	require.NoError(t, err)
	require.Len(t, got.Days(), 1)
	assert.Equal(t, "meal_c", got.Days()[0].Assignments[cacfp.MealTypeLunch].MealItemID)
	assert.True(t, got.IsFinalized())
	assert.NotNil(t, got.FinalizedAt())
	assert.Equal(t, 2, got.Version())
}

func TestMenuRepository_StaleVersionIsConcurrencyConflict(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMenuRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, aprilMenu(t, "mnu_1", "prg_1", lunchDay(1, "meal_a"))))

	first, err := repo.GetByID(ctx, testTenant, "mnu_1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, testTenant, "mnu_1")
	require.NoError(t, err)

	require.NoError(t, first.ReplaceDays([]menu.MenuDay{lunchDay(2, "meal_b")}))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.ReplaceDays([]menu.MenuDay{lunchDay(3, "meal_c")}))
	err = repo.Update(ctx, second)
	assert.True(t, apperrors.IsConcurrencyConflictError(err), "got %v", err)

	got, err := repo.GetByID(ctx, testTenant, "mnu_1")
	require.NoError(t, err)
	assert.Equal(t, "meal_b", got.Days()[0].Assignments[cacfp.MealTypeLunch].MealItemID)
}

func TestMenuRepository_GetInsideTransaction(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMenuRepository(gdb, logger.NewNopLogger())
	tm := db.NewTransactionManager(gdb)
	require.NoError(t, repo.Create(context.Background(), aprilMenu(t, "mnu_1", "prg_1", lunchDay(1, "meal_a"))))

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		m, err := repo.GetByID(ctx, testTenant, "mnu_1")
		if err != nil {
			return err
		}
		require.NotNil(t, m)
		m.Finalize()
		return repo.Update(ctx, m)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), testTenant, "mnu_1")
	require.NoError(t, err)
	assert.True(t, got.IsFinalized())
}

func TestMenuRepository_ListOverlapping(t *testing.T) {
	gdb := testdb.New(t)
	repo := NewMenuRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	for _, mm := range []struct {
		id    string
		year  int
		month time.Month
	}{
		{"mnu_mar", 2024, time.March},
		{"mnu_apr", 2024, time.April},
		{"mnu_may", 2024, time.May},
		{"mnu_jan25", 2025, time.January},
	} {
		m, err := menu.NewMonthlyMenu(mm.id, testTenant, "prg_1", mm.year, mm.month)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, m))
	}

	menus, err := repo.ListOverlapping(ctx, testTenant, "prg_1",
		biztime.Date(2024, time.March, 25), biztime.Date(2024, time.April, 5))
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, "mnu_mar", menus[0].ID())
	assert.Equal(t, "mnu_apr", menus[1].ID())

	menus, err = repo.ListOverlapping(ctx, testTenant, "prg_1",
		biztime.Date(2024, time.December, 1), biztime.Date(2025, time.February, 1))
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "mnu_jan25", menus[0].ID())

	menus, err = repo.ListOverlapping(ctx, testTenant, "prg_other",
		biztime.Date(2024, time.March, 1), biztime.Date(2024, time.May, 31))
	require.NoError(t, err)
	assert.Empty(t, menus)
}
