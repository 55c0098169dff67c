package usecases

import (
	"context"
	"strings"
	"time"

	"mealplan/internal/application/menu/dto"
	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type RegenerateMenuDayCommand struct {
	TenantID string
	MenuID   string
	Date     time.Time
	// MealTypes limits regeneration; empty means every meal type the
	// program serves.
	MealTypes []cacfp.MealType
}

type RegenerateMenuDayResult struct {
	Day         dto.MenuDayDTO
	Failures    []dto.SlotFailureDTO
	MenuVersion int
}

type RegenerateMenuDayUseCase struct {
	planner
	txManager TransactionRunner
}

func NewRegenerateMenuDayUseCase(
	programRepo catering.ProgramRepository,
	mealRepo catering.MealItemRepository,
	menuRepo menu.Repository,
	catalog EvaluatorProvider,
	txManager TransactionRunner,
	cfg config.PlannerConfig,
	logger logger.Interface,
) *RegenerateMenuDayUseCase {
	return &RegenerateMenuDayUseCase{
		planner: planner{
			programRepo: programRepo,
			mealRepo:    mealRepo,
			menuRepo:    menuRepo,
			catalog:     catalog,
			cfg:         cfg,
			logger:      logger,
		},
		txManager: txManager,
	}
}

// Execute re-plans one date against the menu as it is stored now, so the
// earlier days' current assignments drive variety.
func (uc *RegenerateMenuDayUseCase) Execute(ctx context.Context, cmd RegenerateMenuDayCommand) (*RegenerateMenuDayResult, error) {
	uc.logger.Infow("executing regenerate menu day use case",
		"tenant_id", cmd.TenantID,
		"menu_id", cmd.MenuID,
		"date", biztime.FormatDate(cmd.Date),
	)

	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.MenuID) == "" {
		return nil, errors.NewValidationError("menu ID is required")
	}
	if cmd.Date.IsZero() {
		return nil, errors.NewValidationError("date is required")
	}

	gen, err := uc.generator(ctx)
	if err != nil {
		return nil, err
	}

	var (
		day      *menu.MenuDay
		failures []menu.SlotFailure
		version  int
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		m, err := uc.menuRepo.GetByID(txCtx, cmd.TenantID, cmd.MenuID)
		if err != nil {
			return err
		}
		if m == nil {
			return errors.NewNotFoundError("monthly menu not found", cmd.MenuID)
		}
		if m.IsFinalized() {
			return errors.NewInvalidStateError("monthly menu is finalized", m.ID())
		}

		program, err := uc.program(txCtx, cmd.TenantID, m.ProgramID())
		if err != nil {
			return err
		}
		items, err := uc.candidates(txCtx, program)
		if err != nil {
			return err
		}
		prior, err := uc.priorHistory(txCtx, program, m.Year(), m.Month())
		if err != nil {
			return err
		}

		day, failures, err = gen.RegenerateDay(m, program, cmd.Date, cmd.MealTypes, items, prior)
		if err != nil {
			return err
		}
		if err := uc.menuRepo.Update(txCtx, m); err != nil {
			return err
		}
		version = m.Version()
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to regenerate menu day", "menu_id", cmd.MenuID, "error", err)
		return nil, err
	}

	uc.logger.Infow("menu day regenerated successfully",
		"menu_id", cmd.MenuID,
		"date", biztime.FormatDate(day.Date),
		"failures", len(failures),
	)
	return &RegenerateMenuDayResult{
		Day:         dto.ToMenuDayDTO(*day),
		Failures:    dto.ToSlotFailureDTOs(failures),
		MenuVersion: version,
	}, nil
}
