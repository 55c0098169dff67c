package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"mealplan/internal/shared/constants"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/utils"
)

// RequireTenant resolves the tenant from the X-Tenant-ID header. Every
// repository read is scoped by it.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader(constants.HeaderXTenantID))
		if tenantID == "" {
			utils.ErrorResponseWithError(c, errors.NewValidationError("X-Tenant-ID header is required"))
			c.Abort()
			return
		}
		c.Set(constants.ContextKeyTenantID, tenantID)
		c.Next()
	}
}
