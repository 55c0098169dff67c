package usecases

import (
	"context"
	"strings"
	"time"

	"mealplan/internal/application/invoice/dto"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/id"
	"mealplan/internal/shared/logger"
)

type GenerateInvoiceCommand struct {
	TenantID    string
	ProgramID   string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type GenerateInvoiceResult struct {
	Invoice *dto.InvoiceDTO
}

// GenerateInvoiceUseCase bills a program for the served days of a period.
// Number allocation and the invoice row commit in one transaction.
type GenerateInvoiceUseCase struct {
	programRepo catering.ProgramRepository
	menuRepo    menu.Repository
	invoiceRepo invoice.Repository
	allocator   invoice.NumberAllocator
	txManager   TransactionRunner
	logger      logger.Interface
}

func NewGenerateInvoiceUseCase(
	programRepo catering.ProgramRepository,
	menuRepo menu.Repository,
	invoiceRepo invoice.Repository,
	allocator invoice.NumberAllocator,
	txManager TransactionRunner,
	logger logger.Interface,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		programRepo: programRepo,
		menuRepo:    menuRepo,
		invoiceRepo: invoiceRepo,
		allocator:   allocator,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *GenerateInvoiceUseCase) Execute(ctx context.Context, cmd GenerateInvoiceCommand) (*GenerateInvoiceResult, error) {
	uc.logger.Infow("executing generate invoice use case",
		"tenant_id", cmd.TenantID,
		"program_id", cmd.ProgramID,
	)

	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.ProgramID) == "" {
		return nil, errors.NewValidationError("program ID is required")
	}
	period, err := invoice.NewPeriod(cmd.PeriodStart, cmd.PeriodEnd)
	if err != nil {
		return nil, err
	}

	var created *invoice.Invoice
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		program, err := uc.programRepo.GetByID(txCtx, cmd.TenantID, cmd.ProgramID)
		if err != nil {
			return err
		}
		if program == nil {
			return errors.NewNotFoundError("program not found", cmd.ProgramID)
		}

		overlapping, err := uc.invoiceRepo.ExistsOverlapping(txCtx, cmd.TenantID, program.ID, period)
		if err != nil {
			return err
		}
		if overlapping {
			return errors.NewConflictError("period overlaps an existing invoice", period.String())
		}

		menus, err := uc.menuRepo.ListOverlapping(txCtx, cmd.TenantID, program.ID, period.Start, period.End)
		if err != nil {
			return err
		}
		menuID := ""
		for _, m := range menus {
			if !m.IsFinalized() {
				return errors.NewInvalidStateError("monthly menu is not finalized", m.ID())
			}
		}
		if len(menus) == 1 {
			menuID = menus[0].ID()
		}

		days, err := invoice.CollectDays(program, period, menus)
		if err != nil {
			return err
		}
		created, err = issueInvoice(txCtx, uc.allocator, uc.invoiceRepo, program, period, menuID, days)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to generate invoice", "program_id", cmd.ProgramID, "error", err)
		return nil, err
	}

	uc.logger.Infow("invoice generated successfully",
		"invoice_id", created.ID(),
		"invoice_number", created.Number(),
		"program_id", created.ProgramID(),
		"total", created.Total().StringFixed(2),
	)
	return &GenerateInvoiceResult{Invoice: dto.ToInvoiceDTO(created)}, nil
}

// issueInvoice prices the days before allocating so a period with nothing
// to bill never consumes a number.
func issueInvoice(ctx context.Context, allocator invoice.NumberAllocator, repo invoice.Repository,
	program *catering.Program, period invoice.Period, menuID string, days []menu.MenuDay) (*invoice.Invoice, error) {

	lines, _, err := invoice.PriceDays(program, period, days)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.NewValidationError("no billable meals in period", period.String())
	}

	number, err := allocator.Next(ctx, program)
	if err != nil {
		return nil, err
	}
	inv, err := invoice.NewInvoice(id.NewInvoiceID(), program, number, period, menuID, days)
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
