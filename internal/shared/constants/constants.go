package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-ID"
	HeaderXTenantID   = "X-Tenant-ID"

	// Context keys
	ContextKeyTenantID  = "tenant_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableAgeGroups          = "cacfp_age_groups"
	TableComponentTypes     = "cacfp_component_types"
	TablePortionRules       = "cacfp_portion_rules"
	TableFoodComponents     = "food_components"
	TableMealItems          = "catering_meal_items"
	TableMealItemComponents = "catering_meal_components"
	TablePrograms           = "catering_programs"
	TableProgramHolidays    = "catering_program_holidays"
	TableMonthlyMenus       = "catering_monthly_menus"
	TableMenuDays           = "catering_menu_days"
	TableInvoices           = "catering_invoices"

	// Default values
	DefaultCurrency = "USD"
	DateLayout      = "2006-01-02"

	// Pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Invoice numbering
	InvoiceSequenceWidth = 4
	InvoiceLockKeyPrefix = "invoice-seq:"
)
