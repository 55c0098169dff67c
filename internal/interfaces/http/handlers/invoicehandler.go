package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedto "mealplan/internal/application/invoice/dto"
	"mealplan/internal/application/invoice/usecases"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/id"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/utils"
)

type InvoiceHandler struct {
	generateUC        generateInvoiceUseCase
	generateForMenuUC generateInvoicesForMenuUseCase
	listUC            listProgramInvoicesUseCase
	getUC             getInvoiceUseCase
	finalizeUC        invoiceStatusUseCase
	sendUC            invoiceStatusUseCase
	logger            logger.Interface
}

func NewInvoiceHandler(
	generateUC generateInvoiceUseCase,
	generateForMenuUC generateInvoicesForMenuUseCase,
	listUC listProgramInvoicesUseCase,
	getUC getInvoiceUseCase,
	finalizeUC invoiceStatusUseCase,
	sendUC invoiceStatusUseCase,
	logger logger.Interface,
) *InvoiceHandler {
	return &InvoiceHandler{
		generateUC:        generateUC,
		generateForMenuUC: generateForMenuUC,
		listUC:            listUC,
		getUC:             getUC,
		finalizeUC:        finalizeUC,
		sendUC:            sendUC,
		logger:            logger,
	}
}

type GenerateInvoiceRequest struct {
	PeriodStart string `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string `json:"period_end" validate:"required,datetime=2006-01-02"`
}

type GenerateMenuInvoicesRequest struct {
	Grouping string `json:"grouping" validate:"omitempty,oneof=month week day"`
}

type InvoiceStatusResponse struct {
	Invoice   *invoicedto.InvoiceDTO `json:"invoice"`
	Unchanged bool                   `json:"unchanged"`
}

type GenerateMenuInvoicesResponse struct {
	Invoices []*invoicedto.InvoiceDTO `json:"invoices"`
	Skipped  []invoicedto.PeriodDTO   `json:"skipped,omitempty"`
}

// GenerateInvoice handles POST /programs/:id/invoices
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	programID, err := utils.ParseIDParam(c, "id", id.PrefixProgram, "program")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req GenerateInvoiceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for generate invoice", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	start, err := biztime.ParseDate(req.PeriodStart)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid period_start", err.Error()))
		return
	}
	end, err := biztime.ParseDate(req.PeriodEnd)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid period_end", err.Error()))
		return
	}

	result, err := h.generateUC.Execute(c.Request.Context(), usecases.GenerateInvoiceCommand{
		TenantID:    tenantID,
		ProgramID:   programID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result.Invoice, "Invoice generated")
}

// GenerateMenuInvoices handles POST /menus/:id/invoices
func (h *InvoiceHandler) GenerateMenuInvoices(c *gin.Context) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	menuID, err := utils.ParseIDParam(c, "id", id.PrefixMenu, "menu")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req GenerateMenuInvoicesRequest
	if c.Request.ContentLength > 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.generateForMenuUC.Execute(c.Request.Context(), usecases.GenerateInvoicesForMenuCommand{
		TenantID: tenantID,
		MenuID:   menuID,
		Grouping: req.Grouping,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := GenerateMenuInvoicesResponse{Invoices: result.Invoices, Skipped: result.Skipped}
	if len(result.Invoices) == 0 {
		utils.SuccessResponse(c, http.StatusOK, "Menu already invoiced", resp)
		return
	}
	utils.CreatedResponse(c, resp, "Invoices generated")
}

// ListProgramInvoices handles GET /programs/:id/invoices
func (h *InvoiceHandler) ListProgramInvoices(c *gin.Context) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	programID, err := utils.ParseIDParam(c, "id", id.PrefixProgram, "program")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListProgramInvoicesQuery{
		TenantID:  tenantID,
		ProgramID: programID,
		Offset:    p.Offset(),
		Limit:     p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Invoices, result.Total, p.Page, p.PageSize)
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	invoiceID, err := utils.ParseIDParam(c, "id", id.PrefixInvoice, "invoice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	inv, err := h.getUC.Execute(c.Request.Context(), usecases.GetInvoiceQuery{TenantID: tenantID, InvoiceID: invoiceID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, inv)
}

// FinalizeInvoice handles POST /invoices/:id/finalize
func (h *InvoiceHandler) FinalizeInvoice(c *gin.Context) {
	h.changeStatus(c, h.finalizeUC)
}

// SendInvoice handles POST /invoices/:id/send
func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	h.changeStatus(c, h.sendUC)
}

func (h *InvoiceHandler) changeStatus(c *gin.Context, uc invoiceStatusUseCase) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	invoiceID, err := utils.ParseIDParam(c, "id", id.PrefixInvoice, "invoice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.InvoiceStatusCommand{TenantID: tenantID, InvoiceID: invoiceID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, InvoiceStatusResponse{Invoice: result.Invoice, Unchanged: result.Unchanged})
}
