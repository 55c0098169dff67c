package middleware

import (
	stderrors "errors"
	"net"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"mealplan/internal/shared/constants"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
	"mealplan/internal/shared/utils"
)

func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if checkBrokenConnection(recovered) {
			log.Errorw("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"tenant_id", c.GetString(constants.ContextKeyTenantID),
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponseWithError(c, errors.NewInternalError("Internal server error occurred"))
		c.Abort()
	})
}

// checkBrokenConnection checks if the error is a broken connection
func checkBrokenConnection(recovered any) bool {
	brokenConnections := []string{
		"connection reset by peer",
		"broken pipe",
	}

	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var ne *net.OpError
	if !stderrors.As(err, &ne) {
		return false
	}
	var se *os.SyscallError
	if !stderrors.As(ne.Err, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	for _, s := range brokenConnections {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
