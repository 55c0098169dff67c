package handlers

import (
	"context"

	compliancedto "mealplan/internal/application/compliance/dto"
	complianceUsecases "mealplan/internal/application/compliance/usecases"
	invoicedto "mealplan/internal/application/invoice/dto"
	invoiceUsecases "mealplan/internal/application/invoice/usecases"
	menuUsecases "mealplan/internal/application/menu/usecases"
)

// Use case interfaces consumed by the handlers.

type evaluateComplianceUseCase interface {
	Execute(ctx context.Context, query complianceUsecases.EvaluateComplianceQuery) (*compliancedto.ComplianceReportDTO, error)
}

type generateMonthlyMenuUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.GenerateMonthlyMenuCommand) (*menuUsecases.GenerateMonthlyMenuResult, error)
}

type generateTenantMenusUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.GenerateTenantMenusCommand) (*menuUsecases.GenerateTenantMenusResult, error)
}

type regenerateMenuDayUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.RegenerateMenuDayCommand) (*menuUsecases.RegenerateMenuDayResult, error)
}

type finalizeMonthlyMenuUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.FinalizeMonthlyMenuCommand) (*menuUsecases.FinalizeMonthlyMenuResult, error)
}

type weeklyIngredientsUseCase interface {
	Execute(ctx context.Context, query menuUsecases.WeeklyIngredientsQuery) (*menuUsecases.WeeklyIngredientsResult, error)
}

type generateInvoiceUseCase interface {
	Execute(ctx context.Context, cmd invoiceUsecases.GenerateInvoiceCommand) (*invoiceUsecases.GenerateInvoiceResult, error)
}

type generateInvoicesForMenuUseCase interface {
	Execute(ctx context.Context, cmd invoiceUsecases.GenerateInvoicesForMenuCommand) (*invoiceUsecases.GenerateInvoicesForMenuResult, error)
}

type listProgramInvoicesUseCase interface {
	Execute(ctx context.Context, query invoiceUsecases.ListProgramInvoicesQuery) (*invoiceUsecases.ListProgramInvoicesResult, error)
}

type getInvoiceUseCase interface {
	Execute(ctx context.Context, query invoiceUsecases.GetInvoiceQuery) (*invoicedto.InvoiceDTO, error)
}

type invoiceStatusUseCase interface {
	Execute(ctx context.Context, cmd invoiceUsecases.InvoiceStatusCommand) (*invoiceUsecases.InvoiceStatusResult, error)
}
