package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

func newEvaluateUseCase(t *testing.T, item *catering.MealItem) *EvaluateComplianceUseCase {
	t.Helper()
	catalog := testCatalog(t)
	repo := &mockMealItemRepository{
		GetByIDFunc: func(ctx context.Context, tenantID, mealID string) (*catering.MealItem, error) {
			if item == nil || tenantID != item.TenantID || mealID != item.ID {
				return nil, nil
			}
			return item, nil
		},
	}
	source := &mockCatalogSource{
		LoadFunc: func(ctx context.Context) (*cacfp.Catalog, error) { return catalog, nil },
	}
	return NewEvaluateComplianceUseCase(repo, NewCatalogProvider(source, logger.NewNopLogger()), logger.NewNopLogger())
}

func TestEvaluateComplianceUseCase_MissingVegetable(t *testing.T) {
	uc := newEvaluateUseCase(t, chickenLunch())

	report, err := uc.Execute(context.Background(), EvaluateComplianceQuery{
		TenantID:   testTenant,
		MealID:     "meal_chicken",
		AgeGroupID: ageChild3to5,
		MealType:   "lunch",
	})
	require.NoError(t, err)

	assert.Equal(t, "Chicken Plate", report.MealName)
	assert.True(t, report.Applicable)
	assert.False(t, report.IsCompliant)
	assert.False(t, report.UsedVeganAlternative)
	require.Len(t, report.Missing, 1)
	missing := report.Missing[0]
	assert.Equal(t, "Vegetable", missing.Label)
	assert.Equal(t, "0.25", missing.Required.Amount)
	assert.Equal(t, "cup", missing.Required.Unit)
	assert.Equal(t, "0", missing.Actual.Amount)
	assert.Equal(t, string(cacfp.StatusMissing), missing.Status)
	assert.Len(t, report.Satisfied, 4)
}

func TestEvaluateComplianceUseCase_VeganAlternative(t *testing.T) {
	uc := newEvaluateUseCase(t, chickenLunch())

	report, err := uc.Execute(context.Background(), EvaluateComplianceQuery{
		TenantID:   testTenant,
		MealID:     "meal_chicken",
		AgeGroupID: ageChild3to5,
		Vegan:      true,
	})
	require.NoError(t, err)
	assert.True(t, report.UsedVeganAlternative)
	assert.True(t, report.IsCompliant)
	assert.Empty(t, report.Missing)
	// meal type defaults to the meal's own
	assert.Equal(t, "lunch", report.MealType)
}

func TestEvaluateComplianceUseCase_NotApplicableMealType(t *testing.T) {
	uc := newEvaluateUseCase(t, chickenLunch())

	report, err := uc.Execute(context.Background(), EvaluateComplianceQuery{
		TenantID:   testTenant,
		MealID:     "meal_chicken",
		AgeGroupID: ageChild3to5,
		MealType:   "Snack",
	})
	require.NoError(t, err)
	assert.False(t, report.Applicable)
	assert.True(t, report.IsCompliant)
	assert.NotNil(t, report.Missing)
}

func TestEvaluateComplianceUseCase_Errors(t *testing.T) {
	noAlt := chickenLunch()
	noAlt.VeganAlternative = nil

	tests := []struct {
		name    string
		item    *catering.MealItem
		query   EvaluateComplianceQuery
		checkFn func(error) bool
	}{
		{
			name:    "missing tenant",
			item:    chickenLunch(),
			query:   EvaluateComplianceQuery{MealID: "meal_chicken", AgeGroupID: ageChild3to5},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "missing meal id",
			item:    chickenLunch(),
			query:   EvaluateComplianceQuery{TenantID: testTenant, AgeGroupID: ageChild3to5},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "other tenant",
			item:    chickenLunch(),
			query:   EvaluateComplianceQuery{TenantID: "tenant-2", MealID: "meal_chicken", AgeGroupID: ageChild3to5},
			checkFn: errors.IsNotFoundError,
		},
		{
			name:    "unknown meal type",
			item:    chickenLunch(),
			query:   EvaluateComplianceQuery{TenantID: testTenant, MealID: "meal_chicken", AgeGroupID: ageChild3to5, MealType: "brunch"},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "unknown age group",
			item:    chickenLunch(),
			query:   EvaluateComplianceQuery{TenantID: testTenant, MealID: "meal_chicken", AgeGroupID: 42},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "vegan without alternative",
			item:    noAlt,
			query:   EvaluateComplianceQuery{TenantID: testTenant, MealID: "meal_chicken", AgeGroupID: ageChild3to5, Vegan: true},
			checkFn: errors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newEvaluateUseCase(t, tt.item)
			_, err := uc.Execute(context.Background(), tt.query)
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "got %v", err)
		})
	}
}
