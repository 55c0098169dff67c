package http

import (
	"mealplan/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	complianceHandler *handlers.ComplianceHandler
	menuHandler       *handlers.MenuHandler
	invoiceHandler    *handlers.InvoiceHandler
}

func (c *Container) initHandlers() {
	u := c.ucs
	log := c.log.Named("http")

	menuHandler := handlers.NewMenuHandler(
		u.GenerateMonthlyMenu, u.GenerateTenantMenus, u.RegenerateMenuDay,
		u.FinalizeMonthlyMenu, u.WeeklyIngredients, log,
	)
	invoiceHandler := handlers.NewInvoiceHandler(
		u.GenerateInvoice, u.GenerateInvoicesForMenu, u.ListProgramInvoices, u.GetInvoice,
		u.FinalizeInvoice, u.MarkInvoiceSent, log,
	)

	c.hdlrs = &allHandlers{
		complianceHandler: handlers.NewComplianceHandler(u.EvaluateCompliance, log),
		menuHandler:       menuHandler,
		invoiceHandler:    invoiceHandler,
	}
}
