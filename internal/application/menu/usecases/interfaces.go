package usecases

import (
	"context"

	"mealplan/internal/domain/cacfp"
)

// EvaluatorProvider hands out the evaluator for the current rule catalog.
type EvaluatorProvider interface {
	Evaluator(ctx context.Context) (*cacfp.Evaluator, error)
}

// TransactionRunner runs fn in one database transaction carried by ctx.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type GenerateMonthlyMenuExecutor interface {
	Execute(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error)
}

type RegenerateMenuDayExecutor interface {
	Execute(ctx context.Context, cmd RegenerateMenuDayCommand) (*RegenerateMenuDayResult, error)
}

type FinalizeMonthlyMenuExecutor interface {
	Execute(ctx context.Context, cmd FinalizeMonthlyMenuCommand) (*FinalizeMonthlyMenuResult, error)
}

type GenerateTenantMenusExecutor interface {
	Execute(ctx context.Context, cmd GenerateTenantMenusCommand) (*GenerateTenantMenusResult, error)
}

type WeeklyIngredientsExecutor interface {
	Execute(ctx context.Context, query WeeklyIngredientsQuery) (*WeeklyIngredientsResult, error)
}
