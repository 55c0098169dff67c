package http

import (
	complianceUsecases "mealplan/internal/application/compliance/usecases"
	invoiceUsecases "mealplan/internal/application/invoice/usecases"
	menuUsecases "mealplan/internal/application/menu/usecases"
)

// UseCases holds all use case instances used by the application.
type UseCases struct {
	// Compliance
	EvaluateCompliance *complianceUsecases.EvaluateComplianceUseCase

	// Menu
	GenerateMonthlyMenu *menuUsecases.GenerateMonthlyMenuUseCase
	GenerateTenantMenus *menuUsecases.GenerateTenantMenusUseCase
	RegenerateMenuDay   *menuUsecases.RegenerateMenuDayUseCase
	FinalizeMonthlyMenu *menuUsecases.FinalizeMonthlyMenuUseCase
	WeeklyIngredients   *menuUsecases.WeeklyIngredientsUseCase

	// Invoice
	GenerateInvoice         *invoiceUsecases.GenerateInvoiceUseCase
	GenerateInvoicesForMenu *invoiceUsecases.GenerateInvoicesForMenuUseCase
	ListProgramInvoices     *invoiceUsecases.ListProgramInvoicesUseCase
	GetInvoice              *invoiceUsecases.GetInvoiceUseCase
	FinalizeInvoice         *invoiceUsecases.FinalizeInvoiceUseCase
	MarkInvoiceSent         *invoiceUsecases.MarkInvoiceSentUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	planner := c.cfg.Planner
	menuLog := c.log.Named("menu")
	invoiceLog := c.log.Named("invoice")

	generate := menuUsecases.NewGenerateMonthlyMenuUseCase(
		r.programRepo, r.mealRepo, r.menuRepo, c.catalog, c.txManager, planner, menuLog,
	)
	regenerate := menuUsecases.NewRegenerateMenuDayUseCase(
		r.programRepo, r.mealRepo, r.menuRepo, c.catalog, c.txManager, planner, menuLog,
	)
	generateInvoice := invoiceUsecases.NewGenerateInvoiceUseCase(
		r.programRepo, r.menuRepo, r.invoiceRepo, c.allocator, c.txManager, invoiceLog,
	)
	generateForMenu := invoiceUsecases.NewGenerateInvoicesForMenuUseCase(
		r.programRepo, r.menuRepo, r.invoiceRepo, c.allocator, c.txManager, invoiceLog,
	)

	c.ucs = &UseCases{
		EvaluateCompliance: complianceUsecases.NewEvaluateComplianceUseCase(r.mealRepo, c.catalog, c.log.Named("compliance")),

		GenerateMonthlyMenu: generate,
		GenerateTenantMenus: menuUsecases.NewGenerateTenantMenusUseCase(r.programRepo, generate, planner, menuLog),
		RegenerateMenuDay:   regenerate,
		FinalizeMonthlyMenu: menuUsecases.NewFinalizeMonthlyMenuUseCase(r.menuRepo, c.txManager, menuLog),
		WeeklyIngredients:   menuUsecases.NewWeeklyIngredientsUseCase(r.menuRepo, r.mealRepo, menuLog),

		GenerateInvoice:         generateInvoice,
		GenerateInvoicesForMenu: generateForMenu,
		ListProgramInvoices:     invoiceUsecases.NewListProgramInvoicesUseCase(r.programRepo, r.invoiceRepo, invoiceLog),
		GetInvoice:              invoiceUsecases.NewGetInvoiceUseCase(r.invoiceRepo, invoiceLog),
		FinalizeInvoice:         invoiceUsecases.NewFinalizeInvoiceUseCase(r.invoiceRepo, c.txManager, invoiceLog),
		MarkInvoiceSent:         invoiceUsecases.NewMarkInvoiceSentUseCase(r.invoiceRepo, c.txManager, invoiceLog),
	}
}
