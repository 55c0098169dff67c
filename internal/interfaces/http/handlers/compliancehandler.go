package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mealplan/internal/application/compliance/usecases"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/id"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/utils"
)

type ComplianceHandler struct {
	evaluateUC evaluateComplianceUseCase
	logger     logger.Interface
}

func NewComplianceHandler(evaluateUC evaluateComplianceUseCase, logger logger.Interface) *ComplianceHandler {
	return &ComplianceHandler{
		evaluateUC: evaluateUC,
		logger:     logger,
	}
}

// EvaluateMeal handles GET /meals/:id/compliance
func (h *ComplianceHandler) EvaluateMeal(c *gin.Context) {
	tenantID, err := utils.GetTenantID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	mealID, err := utils.ParseIDParam(c, "id", id.PrefixMealItem, "meal")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ageGroupID, err := strconv.Atoi(c.Query("age_group_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("age_group_id must be an integer"))
		return
	}

	vegan := false
	if v := c.Query("vegan"); v != "" {
		vegan, err = strconv.ParseBool(v)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("vegan must be a boolean", v))
			return
		}
	}

	report, err := h.evaluateUC.Execute(c.Request.Context(), usecases.EvaluateComplianceQuery{
		TenantID:   tenantID,
		MealID:     mealID,
		AgeGroupID: ageGroupID,
		MealType:   c.Query("meal_type"),
		Vegan:      vegan,
	})
	if err != nil {
		h.logger.Warnw("compliance evaluation failed", "meal_id", mealID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, report)
}
