package usecases

import (
	"context"
	"strings"

	"mealplan/internal/application/compliance/dto"
	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type EvaluateComplianceQuery struct {
	TenantID   string
	MealID     string
	AgeGroupID int
	MealType   string
	// Vegan evaluates the component set served on vegan days.
	Vegan bool
}

type EvaluateComplianceUseCase struct {
	mealRepo catering.MealItemRepository
	catalog  EvaluatorProvider
	logger   logger.Interface
}

func NewEvaluateComplianceUseCase(
	mealRepo catering.MealItemRepository,
	catalog EvaluatorProvider,
	logger logger.Interface,
) *EvaluateComplianceUseCase {
	return &EvaluateComplianceUseCase{
		mealRepo: mealRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

func (uc *EvaluateComplianceUseCase) Execute(ctx context.Context, query EvaluateComplianceQuery) (*dto.ComplianceReportDTO, error) {
	uc.logger.Infow("executing evaluate compliance use case",
		"tenant_id", query.TenantID,
		"meal_id", query.MealID,
		"age_group_id", query.AgeGroupID,
		"meal_type", query.MealType,
	)

	if strings.TrimSpace(query.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(query.MealID) == "" {
		return nil, errors.NewValidationError("meal ID is required")
	}

	item, err := uc.mealRepo.GetByID(ctx, query.TenantID, query.MealID)
	if err != nil {
		uc.logger.Errorw("failed to get meal item", "meal_id", query.MealID, "error", err)
		return nil, err
	}
	if item == nil {
		return nil, errors.NewNotFoundError("meal item not found", query.MealID)
	}

	mealType := item.MealType
	if query.MealType != "" {
		mealType, err = cacfp.ParseMealType(query.MealType)
		if err != nil {
			return nil, err
		}
	}

	portions, usedAlternative, ok := item.ComponentsFor(query.Vegan)
	if !ok {
		return nil, errors.NewValidationError("meal has no vegan component set", item.Name)
	}

	evaluator, err := uc.catalog.Evaluator(ctx)
	if err != nil {
		return nil, err
	}

	report, err := evaluator.Evaluate(catering.MealComponents(portions), query.AgeGroupID, mealType)
	if err != nil {
		uc.logger.Warnw("meal could not be evaluated", "meal_id", item.ID, "error", err)
		return nil, err
	}

	result := dto.ToComplianceReportDTO(report)
	result.MealID = item.ID
	result.MealName = item.Name
	result.UsedVeganAlternative = usedAlternative

	uc.logger.Infow("compliance evaluated",
		"meal_id", item.ID,
		"is_compliant", result.IsCompliant,
		"missing", len(result.Missing),
	)
	return result, nil
}
