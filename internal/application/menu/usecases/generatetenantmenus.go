package usecases

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/goroutine"
	"mealplan/internal/shared/logger"
)

const defaultTenantConcurrency = 4

type GenerateTenantMenusCommand struct {
	TenantID string
	Year     int
	Month    time.Month
}

// ProgramMenuOutcome is one program's result. Exactly one of Result and
// Error is set.
type ProgramMenuOutcome struct {
	ProgramID   string
	ProgramName string
	Result      *GenerateMonthlyMenuResult
	Error       error
}

type GenerateTenantMenusResult struct {
	Outcomes  []ProgramMenuOutcome
	Succeeded int
	Failed    int
}

type GenerateTenantMenusUseCase struct {
	programRepo catering.ProgramRepository
	generate    GenerateMonthlyMenuExecutor
	concurrency int
	logger      logger.Interface
}

func NewGenerateTenantMenusUseCase(
	programRepo catering.ProgramRepository,
	generate GenerateMonthlyMenuExecutor,
	cfg config.PlannerConfig,
	logger logger.Interface,
) *GenerateTenantMenusUseCase {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultTenantConcurrency
	}
	return &GenerateTenantMenusUseCase{
		programRepo: programRepo,
		generate:    generate,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Execute plans the month for every active program. Programs run
// concurrently; a failing program is reported in its outcome and does not
// cancel the others.
func (uc *GenerateTenantMenusUseCase) Execute(ctx context.Context, cmd GenerateTenantMenusCommand) (*GenerateTenantMenusResult, error) {
	uc.logger.Infow("executing generate tenant menus use case",
		"tenant_id", cmd.TenantID,
		"year", cmd.Year,
		"month", int(cmd.Month),
	)

	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if err := menu.ValidateMonth(cmd.Year, cmd.Month); err != nil {
		return nil, err
	}

	programs, err := uc.programRepo.ListActive(ctx, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to list active programs", "tenant_id", cmd.TenantID, "error", err)
		return nil, err
	}

	outcomes := make([]ProgramMenuOutcome, len(programs))
	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, p := range programs {
		g.Go(func() error {
			var res *GenerateMonthlyMenuResult
			err := goroutine.Run(uc.logger, "generate menu "+p.ID, func() error {
				var err error
				res, err = uc.generate.Execute(ctx, GenerateMonthlyMenuCommand{
					TenantID:  cmd.TenantID,
					ProgramID: p.ID,
					Year:      cmd.Year,
					Month:     cmd.Month,
				})
				return err
			})
			if err != nil {
				res = nil
			}
			outcomes[i] = ProgramMenuOutcome{ProgramID: p.ID, ProgramName: p.Name, Result: res, Error: err}
			return nil
		})
	}
	_ = g.Wait()

	result := &GenerateTenantMenusResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Error != nil {
			result.Failed++
			uc.logger.Warnw("program menu generation failed", "program_id", o.ProgramID, "error", o.Error)
			continue
		}
		result.Succeeded++
	}

	uc.logger.Infow("tenant menus generated",
		"tenant_id", cmd.TenantID,
		"programs", len(programs),
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}
