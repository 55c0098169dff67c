package usecases

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplan/internal/application/menu/dto"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/errors"
)

func programsNamed(ids ...string) []*catering.Program {
	out := make([]*catering.Program, 0, len(ids))
	for _, id := range ids {
		p := brightCafe()
		p.ID = id
		p.Name = "Program " + id
		out = append(out, p)
	}
	return out
}

func TestGenerateTenantMenusUseCase_OneFailureDoesNotCancelOthers(t *testing.T) {
	var calls atomic.Int32
	gen := &mockGenerateMonthlyMenu{
		ExecuteFunc: func(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error) {
			calls.Add(1)
			if cmd.ProgramID == "prg_b" {
				return nil, errors.NewInvalidStateError("monthly menu is finalized", "mnu_b")
			}
			time.Sleep(5 * time.Millisecond)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &GenerateMonthlyMenuResult{Menu: &dto.MonthlyMenuDTO{ProgramID: cmd.ProgramID}}, nil
		},
	}
	uc := NewGenerateTenantMenusUseCase(programRepoFor(programsNamed("prg_a", "prg_b", "prg_c")...), gen,
		config.PlannerConfig{Concurrency: 3}, nopLogger())

	result, err := uc.Execute(context.Background(), GenerateTenantMenusCommand{TenantID: testTenant, Year: 2024, Month: time.April})
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, "prg_a", result.Outcomes[0].ProgramID)
	assert.Equal(t, "prg_a", result.Outcomes[0].Result.Menu.ProgramID)
	assert.Equal(t, "Program prg_b", result.Outcomes[1].ProgramName)
	assert.True(t, errors.IsInvalidStateError(result.Outcomes[1].Error))
	assert.Nil(t, result.Outcomes[1].Result)
	assert.NoError(t, result.Outcomes[2].Error)
}

func TestGenerateTenantMenusUseCase_BoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	gen := &mockGenerateMonthlyMenu{
		ExecuteFunc: func(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return &GenerateMonthlyMenuResult{}, nil
		},
	}
	ids := make([]string, 8)
	for i := range ids {
		ids[i] = fmt.Sprintf("prg_%d", i)
	}
	uc := NewGenerateTenantMenusUseCase(programRepoFor(programsNamed(ids...)...), gen,
		config.PlannerConfig{Concurrency: 2}, nopLogger())

	result, err := uc.Execute(context.Background(), GenerateTenantMenusCommand{TenantID: testTenant, Year: 2024, Month: time.April})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Succeeded)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestGenerateTenantMenusUseCase_Validation(t *testing.T) {
	uc := NewGenerateTenantMenusUseCase(programRepoFor(), &mockGenerateMonthlyMenu{}, config.PlannerConfig{}, nopLogger())

	_, err := uc.Execute(context.Background(), GenerateTenantMenusCommand{Year: 2024, Month: time.April})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), GenerateTenantMenusCommand{TenantID: testTenant, Year: 2024, Month: 0})
	assert.True(t, errors.IsValidationError(err))

	result, err := uc.Execute(context.Background(), GenerateTenantMenusCommand{TenantID: testTenant, Year: 2024, Month: time.May})
	require.NoError(t, err)
	assert.Empty(t, result.Outcomes)
}

func TestGenerateTenantMenusUseCase_PanicIsReportedAsFailure(t *testing.T) {
	gen := &mockGenerateMonthlyMenu{
		ExecuteFunc: func(ctx context.Context, cmd GenerateMonthlyMenuCommand) (*GenerateMonthlyMenuResult, error) {
			if cmd.ProgramID == "prg_a" {
				panic("corrupt menu row")
			}
			return &GenerateMonthlyMenuResult{}, nil
		},
	}
	uc := NewGenerateTenantMenusUseCase(programRepoFor(programsNamed("prg_a", "prg_b")...), gen,
		config.PlannerConfig{Concurrency: 2}, nopLogger())

	result, err := uc.Execute(context.Background(), GenerateTenantMenusCommand{TenantID: testTenant, Year: 2024, Month: time.April})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Error(t, result.Outcomes[0].Error)
	assert.Nil(t, result.Outcomes[0].Result)
	assert.NoError(t, result.Outcomes[1].Error)
}
