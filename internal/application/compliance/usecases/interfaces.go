package usecases

import (
	"context"

	"mealplan/internal/application/compliance/dto"
	"mealplan/internal/domain/cacfp"
)

// EvaluatorProvider hands out the evaluator for the current rule catalog.
type EvaluatorProvider interface {
	Evaluator(ctx context.Context) (*cacfp.Evaluator, error)
}

type EvaluateComplianceExecutor interface {
	Execute(ctx context.Context, query EvaluateComplianceQuery) (*dto.ComplianceReportDTO, error)
}
