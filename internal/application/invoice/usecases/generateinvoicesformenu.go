package usecases

import (
	"context"
	"strings"

	"mealplan/internal/application/invoice/dto"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/mapper"
)

type GenerateInvoicesForMenuCommand struct {
	TenantID string
	MenuID   string
	// Grouping is month, week or day. Empty means month.
	Grouping string
}

type GenerateInvoicesForMenuResult struct {
	Invoices []*dto.InvoiceDTO
	// Skipped lists periods already covered by an existing invoice.
	Skipped []dto.PeriodDTO
}

// GenerateInvoicesForMenuUseCase issues one invoice per group of a
// finalized menu. Each group commits on its own so a rerun after a
// partial failure picks up where the previous run stopped.
type GenerateInvoicesForMenuUseCase struct {
	programRepo catering.ProgramRepository
	menuRepo    menu.Repository
	invoiceRepo invoice.Repository
	allocator   invoice.NumberAllocator
	txManager   TransactionRunner
	logger      logger.Interface
}

func NewGenerateInvoicesForMenuUseCase(
	programRepo catering.ProgramRepository,
	menuRepo menu.Repository,
	invoiceRepo invoice.Repository,
	allocator invoice.NumberAllocator,
	txManager TransactionRunner,
	logger logger.Interface,
) *GenerateInvoicesForMenuUseCase {
	return &GenerateInvoicesForMenuUseCase{
		programRepo: programRepo,
		menuRepo:    menuRepo,
		invoiceRepo: invoiceRepo,
		allocator:   allocator,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *GenerateInvoicesForMenuUseCase) Execute(ctx context.Context, cmd GenerateInvoicesForMenuCommand) (*GenerateInvoicesForMenuResult, error) {
	uc.logger.Infow("executing generate invoices for menu use case",
		"tenant_id", cmd.TenantID,
		"menu_id", cmd.MenuID,
		"grouping", cmd.Grouping,
	)

	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.MenuID) == "" {
		return nil, errors.NewValidationError("menu ID is required")
	}
	policy, err := invoice.ParseGroupingPolicy(cmd.Grouping)
	if err != nil {
		return nil, err
	}

	m, err := uc.menuRepo.GetByID(ctx, cmd.TenantID, cmd.MenuID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.NewNotFoundError("monthly menu not found", cmd.MenuID)
	}
	if !m.IsFinalized() {
		return nil, errors.NewInvalidStateError("monthly menu is not finalized", m.ID())
	}
	program, err := uc.programRepo.GetByID(ctx, cmd.TenantID, m.ProgramID())
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, errors.NewNotFoundError("program not found", m.ProgramID())
	}

	result := &GenerateInvoicesForMenuResult{}
	created := make([]*invoice.Invoice, 0)
	for _, g := range invoice.GroupDays(m, policy) {
		var inv *invoice.Invoice
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			// reread under the row lock so concurrent batches see each other's invoices
			locked, err := uc.programRepo.GetByID(txCtx, cmd.TenantID, program.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return errors.NewNotFoundError("program not found", program.ID)
			}
			overlapping, err := uc.invoiceRepo.ExistsOverlapping(txCtx, cmd.TenantID, locked.ID, g.Period)
			if err != nil || overlapping {
				return err
			}
			inv, err = issueInvoice(txCtx, uc.allocator, uc.invoiceRepo, locked, g.Period, m.ID(), g.Days)
			return err
		})
		if err != nil {
			uc.logger.Errorw("failed to generate invoice for group",
				"menu_id", m.ID(),
				"period", g.Period.String(),
				"error", err,
			)
			return nil, err
		}
		if inv == nil {
			uc.logger.Infow("period already invoiced, skipping", "menu_id", m.ID(), "period", g.Period.String())
			result.Skipped = append(result.Skipped, dto.ToPeriodDTO(g.Period))
			continue
		}
		created = append(created, inv)
	}

	result.Invoices = mapper.MapSlice(created, dto.ToInvoiceDTO)
	uc.logger.Infow("invoices generated for menu",
		"menu_id", m.ID(),
		"created", len(result.Invoices),
		"skipped", len(result.Skipped),
	)
	return result, nil
}
