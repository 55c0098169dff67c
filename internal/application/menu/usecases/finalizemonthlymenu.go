package usecases

import (
	"context"
	"strings"

	"mealplan/internal/application/menu/dto"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type FinalizeMonthlyMenuCommand struct {
	TenantID string
	MenuID   string
}

type FinalizeMonthlyMenuResult struct {
	Menu             *dto.MonthlyMenuDTO
	AlreadyFinalized bool
}

type FinalizeMonthlyMenuUseCase struct {
	menuRepo  menu.Repository
	txManager TransactionRunner
	logger    logger.Interface
}

func NewFinalizeMonthlyMenuUseCase(
	menuRepo menu.Repository,
	txManager TransactionRunner,
	logger logger.Interface,
) *FinalizeMonthlyMenuUseCase {
	return &FinalizeMonthlyMenuUseCase{
		menuRepo:  menuRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *FinalizeMonthlyMenuUseCase) Execute(ctx context.Context, cmd FinalizeMonthlyMenuCommand) (*FinalizeMonthlyMenuResult, error) {
	uc.logger.Infow("executing finalize monthly menu use case", "tenant_id", cmd.TenantID, "menu_id", cmd.MenuID)

	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.MenuID) == "" {
		return nil, errors.NewValidationError("menu ID is required")
	}

	var (
		finalized *menu.MonthlyMenu
		already   bool
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		m, err := uc.menuRepo.GetByID(txCtx, cmd.TenantID, cmd.MenuID)
		if err != nil {
			return err
		}
		if m == nil {
			return errors.NewNotFoundError("monthly menu not found", cmd.MenuID)
		}
		finalized = m
		if !m.Finalize() {
			already = true
			return nil
		}
		return uc.menuRepo.Update(txCtx, m)
	})
	if err != nil {
		uc.logger.Errorw("failed to finalize monthly menu", "menu_id", cmd.MenuID, "error", err)
		return nil, err
	}

	uc.logger.Infow("monthly menu finalized", "menu_id", cmd.MenuID, "already_finalized", already)
	return &FinalizeMonthlyMenuResult{
		Menu:             dto.ToMonthlyMenuDTO(finalized),
		AlreadyFinalized: already,
	}, nil
}
