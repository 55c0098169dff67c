package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	menudto "mealplan/internal/application/menu/dto"
	"mealplan/internal/application/menu/usecases"
	"mealplan/internal/domain/cacfp"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/id"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/utils"
)

type MenuHandler struct {
	generateUC       generateMonthlyMenuUseCase
	generateTenantUC generateTenantMenusUseCase
	regenerateDayUC  regenerateMenuDayUseCase
	finalizeUC       finalizeMonthlyMenuUseCase
	ingredientsUC    weeklyIngredientsUseCase
	logger           logger.Interface
}

func NewMenuHandler(
	generateUC generateMonthlyMenuUseCase,
	generateTenantUC generateTenantMenusUseCase,
	regenerateDayUC regenerateMenuDayUseCase,
	finalizeUC finalizeMonthlyMenuUseCase,
	ingredientsUC weeklyIngredientsUseCase,
	logger logger.Interface,
) *MenuHandler {
	return &MenuHandler{
		generateUC:       generateUC,
		generateTenantUC: generateTenantUC,
		regenerateDayUC:  regenerateDayUC,
		finalizeUC:       finalizeUC,
		ingredientsUC:    ingredientsUC,
		logger:           logger,
	}
}

type MonthRequest struct {
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

type RegenerateDayRequest struct {
	MealTypes []string `json:"meal_types" validate:"omitempty,dive,oneof=breakfast lunch snack supper"`
}

type GenerateMenuResponse struct {
	Menu       *menudto.MonthlyMenuDTO  `json:"menu"`
	Failures   []menudto.SlotFailureDTO `json:"failures"`
	Rejections []menudto.RejectionDTO   `json:"rejections,omitempty"`
	Replaced   bool                     `json:"replaced"`
	Complete   bool                     `json:"complete"`
}

type ProgramMenuOutcomeResponse struct {
	ProgramID   string                `json:"program_id"`
	ProgramName string                `json:"program_name"`
	Result      *GenerateMenuResponse `json:"result,omitempty"`
	Error       *utils.ErrorInfo      `json:"error,omitempty"`
}

type GenerateTenantMenusResponse struct {
	Outcomes  []ProgramMenuOutcomeResponse `json:"outcomes"`
	Succeeded int                          `json:"succeeded"`
	Failed    int                          `json:"failed"`
}

type RegenerateDayResponse struct {
	Day         menudto.MenuDayDTO       `json:"day"`
	Failures    []menudto.SlotFailureDTO `json:"failures"`
	MenuVersion int                      `json:"menu_version"`
}

type FinalizeMenuResponse struct {
	Menu             *menudto.MonthlyMenuDTO `json:"menu"`
	AlreadyFinalized bool                    `json:"already_finalized"`
}

func toGenerateMenuResponse(r *usecases.GenerateMonthlyMenuResult) *GenerateMenuResponse {
	return &GenerateMenuResponse{
		Menu:       r.Menu,
		Failures:   r.Failures,
		Rejections: r.Rejections,
		Replaced:   r.Replaced,
		Complete:   r.IsComplete(),
	}
}

func errorInfo(err error) *utils.ErrorInfo {
	if appErr := errors.GetAppError(err); appErr != nil {
		return &utils.ErrorInfo{Type: string(appErr.Type), Message: appErr.Message, Details: appErr.Details}
	}
	return &utils.ErrorInfo{Type: string(errors.ErrorTypeInternal), Message: "Internal server error occurred"}
}

// GenerateMonthlyMenu handles POST /programs/:id/menus
func (h *MenuHandler) GenerateMonthlyMenu(c *gin.Context) {
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
	var req MonthRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for generate monthly menu", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.generateUC.Execute(c.Request.Context(), usecases.GenerateMonthlyMenuCommand{
		TenantID:  tenantID,
		ProgramID: programID,
		Year:      req.Year,
		Month:     time.Month(req.Month),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Replaced {
		utils.SuccessResponse(c, http.StatusOK, "Monthly menu regenerated", toGenerateMenuResponse(result))
		return
	}
	utils.CreatedResponse(c, toGenerateMenuResponse(result), "Monthly menu generated")
}

// GenerateTenantMenus handles POST /menus/generate
func (h *MenuHandler) GenerateTenantMenus(c *gin.Context) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	var req MonthRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for generate tenant menus", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.generateTenantUC.Execute(c.Request.Context(), usecases.GenerateTenantMenusCommand{
		TenantID: tenantID,
		Year:     req.Year,
		Month:    time.Month(req.Month),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := GenerateTenantMenusResponse{
		Outcomes:  make([]ProgramMenuOutcomeResponse, 0, len(result.Outcomes)),
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
	}
	for _, o := range result.Outcomes {
		out := ProgramMenuOutcomeResponse{ProgramID: o.ProgramID, ProgramName: o.ProgramName}
		if o.Error != nil {
			out.Error = errorInfo(o.Error)
		} else {
			out.Result = toGenerateMenuResponse(o.Result)
		}
		resp.Outcomes = append(resp.Outcomes, out)
	}
	utils.OKResponse(c, resp)
}

// RegenerateDay handles POST /menus/:id/days/:date/regenerate
func (h *MenuHandler) RegenerateDay(c *gin.Context) {
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
	date, err := utils.ParseDateParam(c, "date")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RegenerateDayRequest
	if c.Request.ContentLength > 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}
	mealTypes := make([]cacfp.MealType, 0, len(req.MealTypes))
	for _, s := range req.MealTypes {
		mt, err := cacfp.ParseMealType(s)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		mealTypes = append(mealTypes, mt)
	}

	result, err := h.regenerateDayUC.Execute(c.Request.Context(), usecases.RegenerateMenuDayCommand{
		TenantID:  tenantID,
		MenuID:    menuID,
		Date:      date,
		MealTypes: mealTypes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Menu day regenerated", RegenerateDayResponse{
		Day:         result.Day,
		Failures:    result.Failures,
		MenuVersion: result.MenuVersion,
	})
}

// Finalize handles POST /menus/:id/finalize
func (h *MenuHandler) Finalize(c *gin.Context) {
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

	result, err := h.finalizeUC.Execute(c.Request.Context(), usecases.FinalizeMonthlyMenuCommand{
		TenantID: tenantID,
		MenuID:   menuID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, FinalizeMenuResponse{Menu: result.Menu, AlreadyFinalized: result.AlreadyFinalized})
}

// WeeklyIngredients handles GET /menus/:id/ingredients
func (h *MenuHandler) WeeklyIngredients(c *gin.Context) {
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

	result, err := h.ingredientsUC.Execute(c.Request.Context(), usecases.WeeklyIngredientsQuery{
		TenantID: tenantID,
		MenuID:   menuID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"menu_id": result.MenuID, "weeks": result.Weeks})
}
