package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealplan/internal/interfaces/http/middleware"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log.Named("http")))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.healthCheck)

	registerAPIRoutes(c.engine.Group("/api/v1"), c.hdlrs)
}

func registerAPIRoutes(api *gin.RouterGroup, h *allHandlers) {
	api.Use(middleware.RequireTenant())

	meals := api.Group("/meals")
	{
		meals.GET("/:id/compliance", h.complianceHandler.EvaluateMeal)
	}

	programs := api.Group("/programs")
	{
		programs.POST("/:id/menus", h.menuHandler.GenerateMonthlyMenu)
		programs.POST("/:id/invoices", h.invoiceHandler.GenerateInvoice)
		programs.GET("/:id/invoices", h.invoiceHandler.ListProgramInvoices)
	}

	menus := api.Group("/menus")
	{
		menus.POST("/generate", h.menuHandler.GenerateTenantMenus)
		menus.POST("/:id/days/:date/regenerate", h.menuHandler.RegenerateDay)
		menus.POST("/:id/finalize", h.menuHandler.Finalize)
		menus.GET("/:id/ingredients", h.menuHandler.WeeklyIngredients)
		menus.POST("/:id/invoices", h.invoiceHandler.GenerateMenuInvoices)
	}

	invoices := api.Group("/invoices")
	{
		invoices.GET("/:id", h.invoiceHandler.GetInvoice)
		invoices.POST("/:id/finalize", h.invoiceHandler.FinalizeInvoice)
		invoices.POST("/:id/send", h.invoiceHandler.SendInvoice)
	}
}

func (c *Container) healthCheck(ctx *gin.Context) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		c.log.Warnw("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}
