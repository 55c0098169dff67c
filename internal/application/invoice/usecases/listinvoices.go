package usecases

import (
	"context"
	"strings"

	"mealplan/internal/application/invoice/dto"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/mapper"
)

type ListProgramInvoicesQuery struct {
	TenantID  string
	ProgramID string
	Offset    int
	Limit     int
}

type ListProgramInvoicesResult struct {
	Invoices []*dto.InvoiceDTO
	Total    int64
}

type ListProgramInvoicesUseCase struct {
	programRepo catering.ProgramRepository
	invoiceRepo invoice.Repository
	logger      logger.Interface
}

func NewListProgramInvoicesUseCase(
	programRepo catering.ProgramRepository,
	invoiceRepo invoice.Repository,
	logger logger.Interface,
) *ListProgramInvoicesUseCase {
	return &ListProgramInvoicesUseCase{
		programRepo: programRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (uc *ListProgramInvoicesUseCase) Execute(ctx context.Context, query ListProgramInvoicesQuery) (*ListProgramInvoicesResult, error) {
	if strings.TrimSpace(query.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if query.Limit <= 0 {
		return nil, errors.NewValidationError("limit must be positive")
	}

	program, err := uc.programRepo.GetByID(ctx, query.TenantID, query.ProgramID)
	if err != nil {
		uc.logger.Errorw("failed to load program", "program_id", query.ProgramID, "error", err)
		return nil, err
	}
	if program == nil {
		return nil, errors.NewNotFoundError("program not found", query.ProgramID)
	}

	invoices, total, err := uc.invoiceRepo.ListByProgram(ctx, query.TenantID, program.ID, query.Offset, query.Limit)
	if err != nil {
		uc.logger.Errorw("failed to list invoices", "program_id", program.ID, "error", err)
		return nil, err
	}
	if invoices == nil {
		invoices = []*invoice.Invoice{}
	}

	return &ListProgramInvoicesResult{
		Invoices: mapper.MapSlice(invoices, dto.ToInvoiceDTO),
		Total:    total,
	}, nil
}

type GetInvoiceQuery struct {
	TenantID  string
	InvoiceID string
}

type GetInvoiceUseCase struct {
	invoiceRepo invoice.Repository
	logger      logger.Interface
}

func NewGetInvoiceUseCase(invoiceRepo invoice.Repository, logger logger.Interface) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{invoiceRepo: invoiceRepo, logger: logger}
}

func (uc *GetInvoiceUseCase) Execute(ctx context.Context, query GetInvoiceQuery) (*dto.InvoiceDTO, error) {
	if strings.TrimSpace(query.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, query.TenantID, query.InvoiceID)
	if err != nil {
		uc.logger.Errorw("failed to get invoice", "invoice_id", query.InvoiceID, "error", err)
		return nil, err
	}
	if inv == nil {
		return nil, errors.NewNotFoundError("invoice not found", query.InvoiceID)
	}
	return dto.ToInvoiceDTO(inv), nil
}
