package usecases

import (
	"context"
	"strings"

	"mealplan/internal/application/menu/dto"
	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/mapper"
)

type WeeklyIngredientsQuery struct {
	TenantID string
	MenuID   string
}

type WeeklyIngredientsResult struct {
	MenuID string
	Weeks  []dto.WeekIngredientsDTO
}

type WeeklyIngredientsUseCase struct {
	menuRepo menu.Repository
	mealRepo catering.MealItemRepository
	logger   logger.Interface
}

func NewWeeklyIngredientsUseCase(
	menuRepo menu.Repository,
	mealRepo catering.MealItemRepository,
	logger logger.Interface,
) *WeeklyIngredientsUseCase {
	return &WeeklyIngredientsUseCase{
		menuRepo: menuRepo,
		mealRepo: mealRepo,
		logger:   logger,
	}
}

func (uc *WeeklyIngredientsUseCase) Execute(ctx context.Context, query WeeklyIngredientsQuery) (*WeeklyIngredientsResult, error) {
	uc.logger.Infow("executing weekly ingredients use case", "tenant_id", query.TenantID, "menu_id", query.MenuID)

	if strings.TrimSpace(query.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(query.MenuID) == "" {
		return nil, errors.NewValidationError("menu ID is required")
	}

	m, err := uc.menuRepo.GetByID(ctx, query.TenantID, query.MenuID)
	if err != nil {
		uc.logger.Errorw("failed to get monthly menu", "menu_id", query.MenuID, "error", err)
		return nil, err
	}
	if m == nil {
		return nil, errors.NewNotFoundError("monthly menu not found", query.MenuID)
	}

	seen := make(map[cacfp.MealType]bool)
	var mealTypes []cacfp.MealType
	for _, d := range m.Days() {
		for _, mt := range d.MealTypes() {
			if !seen[mt] {
				seen[mt] = true
				mealTypes = append(mealTypes, mt)
			}
		}
	}

	meals := make(map[string]*catering.MealItem)
	if len(mealTypes) > 0 {
		items, err := uc.mealRepo.ListByMealTypes(ctx, query.TenantID, mealTypes)
		if err != nil {
			uc.logger.Errorw("failed to list meal items", "menu_id", query.MenuID, "error", err)
			return nil, err
		}
		for _, item := range items {
			meals[item.ID] = item
		}
	}

	weeks := mapper.MapSlice(menu.WeeklyIngredients(m, meals), dto.ToWeekIngredientsDTO)
	uc.logger.Infow("weekly ingredients collected", "menu_id", m.ID(), "weeks", len(weeks))
	return &WeeklyIngredientsResult{MenuID: m.ID(), Weeks: weeks}, nil
}
