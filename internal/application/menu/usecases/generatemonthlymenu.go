package usecases

import (
	"context"
	"strings"
	"time"

	"mealplan/internal/application/menu/dto"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/id"
	"mealplan/internal/shared/logger"
)

type GenerateMonthlyMenuCommand struct {
	TenantID  string
	ProgramID string
	Year      int
	Month     time.Month
}

// GenerateMonthlyMenuResult carries the saved menu and the slots that
// could not be filled. Failures being non-empty is not an error.
type GenerateMonthlyMenuResult struct {
	Menu       *dto.MonthlyMenuDTO
	Failures   []dto.SlotFailureDTO
	Rejections []dto.RejectionDTO
	Replaced   bool
}

func (r *GenerateMonthlyMenuResult) IsComplete() bool {
	return len(r.Failures) == 0
}

type GenerateMonthlyMenuUseCase struct {
	planner
	txManager TransactionRunner
}

func NewGenerateMonthlyMenuUseCase(
	programRepo catering.ProgramRepository,
	mealRepo catering.MealItemRepository,
	menuRepo menu.Repository,
	catalog EvaluatorProvider,
	txManager TransactionRunner,
	cfg config.PlannerConfig,
	logger logger.Interface,
) *GenerateMonthlyMenuUseCase {
	return &GenerateMonthlyMenuUseCase{
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

func (uc *GenerateMonthlyMenuUseCase) Execute(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error) {
	uc.logger.Infow("executing generate monthly menu use case",
		"tenant_id", cmd.TenantID,
		"program_id", cmd.ProgramID,
		"year", cmd.Year,
		"month", int(cmd.Month),
	)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid generate monthly menu command", "error", err)
		return nil, err
	}

	program, err := uc.program(ctx, cmd.TenantID, cmd.ProgramID)
	if err != nil {
		return nil, err
	}
	gen, err := uc.generator(ctx)
	if err != nil {
		return nil, err
	}
	items, err := uc.candidates(ctx, program)
	if err != nil {
		return nil, err
	}

	var (
		generated *menu.GenerationResult
		replaced  bool
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.menuRepo.GetByProgramMonth(txCtx, cmd.TenantID, program.ID, cmd.Year, cmd.Month)
		if err != nil {
			return err
		}
		if existing != nil && existing.IsFinalized() {
			return errors.NewInvalidStateError("monthly menu is finalized", existing.ID())
		}

		prior, err := uc.priorHistory(txCtx, program, cmd.Year, cmd.Month)
		if err != nil {
			return err
		}

		generated, err = gen.Generate(id.NewMenuID(), program, cmd.Year, cmd.Month, items, prior)
		if err != nil {
			return err
		}

		if existing == nil {
			return uc.menuRepo.Create(txCtx, generated.Menu)
		}
		if err := existing.ReplaceDays(generated.Menu.Days()); err != nil {
			return err
		}
		if err := uc.menuRepo.Update(txCtx, existing); err != nil {
			return err
		}
		generated.Menu = existing
		replaced = true
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to generate monthly menu", "program_id", cmd.ProgramID, "error", err)
		return nil, err
	}

	if !generated.IsComplete() {
		uc.logger.Warnw("monthly menu has unfilled slots",
			"menu_id", generated.Menu.ID(),
			"failures", len(generated.Failures),
		)
	}
	uc.logger.Infow("monthly menu generated successfully",
		"menu_id", generated.Menu.ID(),
		"program_id", program.ID,
		"days", len(generated.Menu.Days()),
		"replaced", replaced,
	)

	return &GenerateMonthlyMenuResult{
		Menu:       dto.ToMonthlyMenuDTO(generated.Menu),
		Failures:   dto.ToSlotFailureDTOs(generated.Failures),
		Rejections: dto.ToRejectionDTOs(generated.Rejections),
		Replaced:   replaced,
	}, nil
}

func (uc *GenerateMonthlyMenuUseCase) validateCommand(cmd GenerateMonthlyMenuCommand) error {
	if strings.TrimSpace(cmd.TenantID) == "" {
		return errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.ProgramID) == "" {
		return errors.NewValidationError("program ID is required")
	}
	return menu.ValidateMonth(cmd.Year, cmd.Month)
}
