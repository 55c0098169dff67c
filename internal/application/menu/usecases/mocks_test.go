package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/logger"
)

const (
	testTenant = "tenant-1"
	ageChild35 = 4

	ctMilk      = 1
	ctMeat      = 2
	ctGrain     = 3
	ctVegetable = 4
	ctFruit     = 5
)

type mockProgramRepository struct {
	CreateFunc     func(ctx context.Context, program *catering.Program) error
	GetByIDFunc    func(ctx context.Context, tenantID, programID string) (*catering.Program, error)
	ListActiveFunc func(ctx context.Context, tenantID string) ([]*catering.Program, error)
}

func (m *mockProgramRepository) Create(ctx context.Context, program *catering.Program) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, program)
	}
	return nil
}

func (m *mockProgramRepository) GetByID(ctx context.Context, tenantID, programID string) (*catering.Program, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, programID)
	}
	return nil, nil
}

func (m *mockProgramRepository) ListActive(ctx context.Context, tenantID string) ([]*catering.Program, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, tenantID)
	}
	return nil, nil
}

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

type mockMenuRepository struct {
	CreateFunc            func(ctx context.Context, m *menu.MonthlyMenu) error
	UpdateFunc            func(ctx context.Context, m *menu.MonthlyMenu) error
	GetByIDFunc           func(ctx context.Context, tenantID, menuID string) (*menu.MonthlyMenu, error)
	GetByProgramMonthFunc func(ctx context.Context, tenantID, programID string, year int, month time.Month) (*menu.MonthlyMenu, error)
	ListOverlappingFunc   func(ctx context.Context, tenantID, programID string, start, end time.Time) ([]*menu.MonthlyMenu, error)
}

func (m *mockMenuRepository) Create(ctx context.Context, mm *menu.MonthlyMenu) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mm)
	}
	return nil
}

func (m *mockMenuRepository) Update(ctx context.Context, mm *menu.MonthlyMenu) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mm)
	}
	return nil
}

func (m *mockMenuRepository) GetByID(ctx context.Context, tenantID, menuID string) (*menu.MonthlyMenu, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, menuID)
	}
	return nil, nil
}

func (m *mockMenuRepository) GetByProgramMonth(ctx context.Context, tenantID, programID string, year int, month time.Month) (*menu.MonthlyMenu, error) {
	if m.GetByProgramMonthFunc != nil {
		return m.GetByProgramMonthFunc(ctx, tenantID, programID, year, month)
	}
	return nil, nil
}

func (m *mockMenuRepository) ListOverlapping(ctx context.Context, tenantID, programID string, start, end time.Time) ([]*menu.MonthlyMenu, error) {
	if m.ListOverlappingFunc != nil {
		return m.ListOverlappingFunc(ctx, tenantID, programID, start, end)
	}
	return nil, nil
}

// menuStore backs a mockMenuRepository with a map and counts writes.
type menuStore struct {
	mu      sync.Mutex
	menus   map[string]*menu.MonthlyMenu
	creates int
	updates int
}

func newMenuStore(menus ...*menu.MonthlyMenu) (*menuStore, *mockMenuRepository) {
	s := &menuStore{menus: make(map[string]*menu.MonthlyMenu)}
	for _, m := range menus {
		s.menus[m.ID()] = m
	}
	repo := &mockMenuRepository{
		CreateFunc: func(ctx context.Context, m *menu.MonthlyMenu) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.creates++
			s.menus[m.ID()] = m
			return nil
		},
		UpdateFunc: func(ctx context.Context, m *menu.MonthlyMenu) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.updates++
			m.IncrementVersion()
			s.menus[m.ID()] = m
			return nil
		},
		GetByIDFunc: func(ctx context.Context, tenantID, menuID string) (*menu.MonthlyMenu, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			m := s.menus[menuID]
			if m == nil || m.TenantID() != tenantID {
				return nil, nil
			}
			return m, nil
		},
		GetByProgramMonthFunc: func(ctx context.Context, tenantID, programID string, year int, month time.Month) (*menu.MonthlyMenu, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, m := range s.menus {
				if m.TenantID() == tenantID && m.ProgramID() == programID && m.Year() == year && m.Month() == month {
					return m, nil
				}
			}
			return nil, nil
		},
	}
	return s, repo
}

type mockTransactionRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type staticEvaluator struct {
	ev *cacfp.Evaluator
}

func (s staticEvaluator) Evaluator(ctx context.Context) (*cacfp.Evaluator, error) {
	return s.ev, nil
}

type mockGenerateMonthlyMenu struct {
	ExecuteFunc func(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error)
}

func (m *mockGenerateMonthlyMenu) Execute(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

func q(s string, u cacfp.Unit) cacfp.Quantity {
	return cacfp.NewQuantity(decimal.RequireFromString(s), u)
}

func testEvaluator(t *testing.T) EvaluatorProvider {
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
	return staticEvaluator{ev: cacfp.NewEvaluator(catalog)}
}

func testFood(name string, ct int, u cacfp.Unit, vegan bool) catering.FoodComponent {
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
		TenantID: testTenant,
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
		TenantID: testTenant,
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

// brightCafe serves breakfast and lunch on weekdays; April 15th 2024 is a
// holiday, leaving 21 service days that month.
func brightCafe() *catering.Program {
	return &catering.Program{
		ID:            "prg_bright",
		TenantID:      testTenant,
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

func programRepoFor(programs ...*catering.Program) *mockProgramRepository {
	return &mockProgramRepository{
		GetByIDFunc: func(ctx context.Context, tenantID, programID string) (*catering.Program, error) {
			for _, p := range programs {
				if p.ID == programID && p.TenantID == tenantID {
					return p, nil
				}
			}
			return nil, nil
		},
		ListActiveFunc: func(ctx context.Context, tenantID string) ([]*catering.Program, error) {
			return programs, nil
		},
	}
}

func mealRepoFor(items []*catering.MealItem) *mockMealItemRepository {
	return &mockMealItemRepository{
		ListByMealTypesFunc: func(ctx context.Context, tenantID string, mealTypes []cacfp.MealType) ([]*catering.MealItem, error) {
			wanted := make(map[cacfp.MealType]bool, len(mealTypes))
			for _, mt := range mealTypes {
				wanted[mt] = true
			}
			var out []*catering.MealItem
			for _, it := range items {
				if it.TenantID == tenantID && wanted[it.MealType] {
					out = append(out, it)
				}
			}
			return out, nil
		},
	}
}

func plannerConfig() config.PlannerConfig {
	return config.PlannerConfig{Lookback: 10, SeedFromPreviousMonth: true}
}

func nopLogger() logger.Interface {
	return logger.NewNopLogger()
}

func dayWithLunch(date time.Time, mealID string) menu.MenuDay {
	d := menu.NewMenuDay(date)
	d.Assignments[cacfp.MealTypeLunch] = menu.Assignment{MealItemID: mealID, MealName: "Lunch " + mealID}
	return d
}

func storedMenu(t *testing.T, id string, year int, month time.Month, days ...menu.MenuDay) *menu.MonthlyMenu {
	t.Helper()
	m, err := menu.NewMonthlyMenu(id, testTenant, "prg_bright", year, month)
	require.NoError(t, err)
	require.NoError(t, m.ReplaceDays(days))
	return m
}
