package utils

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/constants"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/id"
)

// ParseIDParam reads a prefixed ID from the route and checks its prefix.
// entityName is used in error messages (e.g. "menu", "program").
func ParseIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	v := c.Param(paramName)
	if v == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if err := id.Validate(v, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}
	return v, nil
}

// ParseDateParam reads a YYYY-MM-DD route parameter.
func ParseDateParam(c *gin.Context, paramName string) (time.Time, error) {
	d, err := biztime.ParseDate(c.Param(paramName))
	if err != nil {
		return time.Time{}, errors.NewValidationError(paramName+" must be a date in YYYY-MM-DD format", err.Error())
	}
	return d, nil
}

// GetTenantID returns the tenant resolved by the tenant middleware.
func GetTenantID(c *gin.Context) (string, error) {
	tenantID := c.GetString(constants.ContextKeyTenantID)
	if err := ValidateTenantID(tenantID); err != nil {
		return "", err
	}
	return tenantID, nil
}

// BindJSON decodes the body into req and validates it. Decode failures
// become validation errors so they map to 400.
func BindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return ValidateStruct(req)
}
