package usecases

import (
	"context"
	"strings"

	"mealplan/internal/application/invoice/dto"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type InvoiceStatusCommand struct {
	TenantID  string
	InvoiceID string
}

type InvoiceStatusResult struct {
	Invoice *dto.InvoiceDTO
	// Unchanged is set when the invoice already had the target status.
	Unchanged bool
}

// FinalizeInvoiceUseCase moves a draft invoice to finalized.
type FinalizeInvoiceUseCase struct {
	transition *statusTransition
}

func NewFinalizeInvoiceUseCase(invoiceRepo invoice.Repository, txManager TransactionRunner, logger logger.Interface) *FinalizeInvoiceUseCase {
	return &FinalizeInvoiceUseCase{transition: &statusTransition{
		name:        "finalize",
		target:      invoice.StatusFinalized,
		apply:       (*invoice.Invoice).Finalize,
		invoiceRepo: invoiceRepo,
		txManager:   txManager,
		logger:      logger,
	}}
}

func (uc *FinalizeInvoiceUseCase) Execute(ctx context.Context, cmd InvoiceStatusCommand) (*InvoiceStatusResult, error) {
	return uc.transition.run(ctx, cmd)
}

// MarkInvoiceSentUseCase records that a finalized invoice went out.
type MarkInvoiceSentUseCase struct {
	transition *statusTransition
}

func NewMarkInvoiceSentUseCase(invoiceRepo invoice.Repository, txManager TransactionRunner, logger logger.Interface) *MarkInvoiceSentUseCase {
	return &MarkInvoiceSentUseCase{transition: &statusTransition{
		name:        "mark sent",
		target:      invoice.StatusSent,
		apply:       (*invoice.Invoice).MarkSent,
		invoiceRepo: invoiceRepo,
		txManager:   txManager,
		logger:      logger,
	}}
}

func (uc *MarkInvoiceSentUseCase) Execute(ctx context.Context, cmd InvoiceStatusCommand) (*InvoiceStatusResult, error) {
	return uc.transition.run(ctx, cmd)
}

type statusTransition struct {
	name        string
	target      invoice.Status
	apply       func(*invoice.Invoice) error
	invoiceRepo invoice.Repository
	txManager   TransactionRunner
	logger      logger.Interface
}

func (t *statusTransition) run(ctx context.Context, cmd InvoiceStatusCommand) (*InvoiceStatusResult, error) {
	t.logger.Infow("executing invoice status use case",
		"action", t.name,
		"tenant_id", cmd.TenantID,
		"invoice_id", cmd.InvoiceID,
	)

	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, errors.NewValidationError("tenant ID is required")
	}
	if strings.TrimSpace(cmd.InvoiceID) == "" {
		return nil, errors.NewValidationError("invoice ID is required")
	}

	var (
		updated   *invoice.Invoice
		unchanged bool
	)
	err := t.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := t.invoiceRepo.GetByID(txCtx, cmd.TenantID, cmd.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return errors.NewNotFoundError("invoice not found", cmd.InvoiceID)
		}
		updated = inv
		if inv.Status() == t.target {
			unchanged = true
			return nil
		}
		if err := t.apply(inv); err != nil {
			return err
		}
		return t.invoiceRepo.Update(txCtx, inv)
	})
	if err != nil {
		t.logger.Errorw("failed to change invoice status", "action", t.name, "invoice_id", cmd.InvoiceID, "error", err)
		return nil, err
	}

	t.logger.Infow("invoice status changed",
		"invoice_id", updated.ID(),
		"status", updated.Status(),
		"unchanged", unchanged,
	)
	return &InvoiceStatusResult{Invoice: dto.ToInvoiceDTO(updated), Unchanged: unchanged}, nil
}
