package usecases

import (
	"context"
	"time"

	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

// planner holds what generation and regeneration share: the candidate
// pool, the evaluator and the history carried in from the previous month.
type planner struct {
	programRepo catering.ProgramRepository
	mealRepo    catering.MealItemRepository
	menuRepo    menu.Repository
	catalog     EvaluatorProvider
	cfg         config.PlannerConfig
	logger      logger.Interface
}

func (p *planner) generator(ctx context.Context) (*menu.Generator, error) {
	ev, err := p.catalog.Evaluator(ctx)
	if err != nil {
		return nil, err
	}
	return menu.NewGenerator(ev, menu.Options{
		Lookback:      p.cfg.Lookback,
		StrictVariety: p.cfg.StrictVariety,
	}), nil
}

func (p *planner) lookback() int {
	if p.cfg.Lookback > 0 {
		return p.cfg.Lookback
	}
	return menu.DefaultLookback
}

func (p *planner) program(ctx context.Context, tenantID, programID string) (*catering.Program, error) {
	program, err := p.programRepo.GetByID(ctx, tenantID, programID)
	if err != nil {
		p.logger.Errorw("failed to get program", "program_id", programID, "error", err)
		return nil, err
	}
	if program == nil {
		return nil, errors.NewNotFoundError("program not found", programID)
	}
	return program, nil
}

func (p *planner) candidates(ctx context.Context, program *catering.Program) ([]*catering.MealItem, error) {
	items, err := p.mealRepo.ListByMealTypes(ctx, program.TenantID, program.OrderedMealTypes())
	if err != nil {
		p.logger.Errorw("failed to list candidate meals", "program_id", program.ID, "error", err)
		return nil, err
	}
	return items, nil
}

// priorHistory is the tail of the previous month's menu, or empty when
// seeding is disabled or that month was never planned.
func (p *planner) priorHistory(ctx context.Context, program *catering.Program, year int, month time.Month) (menu.History, error) {
	if !p.cfg.SeedFromPreviousMonth {
		return nil, nil
	}
	py, pm := biztime.PreviousMonth(year, month)
	prev, err := p.menuRepo.GetByProgramMonth(ctx, program.TenantID, program.ID, py, pm)
	if err != nil {
		p.logger.Errorw("failed to load previous month menu", "program_id", program.ID, "error", err)
		return nil, err
	}
	if prev == nil {
		return nil, nil
	}
	return menu.HistoryFromDays(prev.Days()).Tail(p.lookback()), nil
}
