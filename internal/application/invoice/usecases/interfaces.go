package usecases

import (
	"context"

	"mealplan/internal/application/invoice/dto"
)

// TransactionRunner runs fn in one database transaction carried by ctx.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type GenerateInvoiceExecutor interface {
	Execute(ctx context.Context, cmd GenerateInvoiceCommand) (*GenerateInvoiceResult, error)
}

type GenerateInvoicesForMenuExecutor interface {
	Execute(ctx context.Context, cmd GenerateInvoicesForMenuCommand) (*GenerateInvoicesForMenuResult, error)
}

type ListProgramInvoicesExecutor interface {
	Execute(ctx context.Context, query ListProgramInvoicesQuery) (*ListProgramInvoicesResult, error)
}

type GetInvoiceExecutor interface {
	Execute(ctx context.Context, query GetInvoiceQuery) (*dto.InvoiceDTO, error)
}

type InvoiceStatusExecutor interface {
	Execute(ctx context.Context, cmd InvoiceStatusCommand) (*InvoiceStatusResult, error)
}
