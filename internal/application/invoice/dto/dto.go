package dto

import (
	"time"

	"mealplan/internal/domain/invoice"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/mapper"
)

type LineItemDTO struct {
	ServiceDate string         `json:"service_date"`
	MealsByType map[string]int `json:"meals_by_type"`
	MealCount   int            `json:"meal_count"`
	UnitPrice   string         `json:"unit_price"`
	Amount      string         `json:"amount"`
}

// InvoiceDTO renders money as fixed two-decimal strings.
type InvoiceDTO struct {
	ID            string        `json:"id"`
	Number        string        `json:"invoice_number"`
	ProgramID     string        `json:"program_id"`
	MonthlyMenuID string        `json:"monthly_menu_id,omitempty"`
	PeriodStart   string        `json:"period_start"`
	PeriodEnd     string        `json:"period_end"`
	Status        string        `json:"status"`
	Currency      string        `json:"currency"`
	Total         string        `json:"total"`
	MealCount     int           `json:"meal_count"`
	Lines         []LineItemDTO `json:"line_items"`
	CreatedAt     time.Time     `json:"created_at"`
}

type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func ToLineItemDTO(l invoice.LineItem) LineItemDTO {
	byType := make(map[string]int, len(l.MealsByType))
	for mt, n := range l.MealsByType {
		byType[mt.String()] = n
	}
	return LineItemDTO{
		ServiceDate: biztime.FormatDate(l.ServiceDate),
		MealsByType: byType,
		MealCount:   l.MealCount,
		UnitPrice:   l.UnitPrice.StringFixed(2),
		Amount:      l.Amount.StringFixed(2),
	}
}

func ToInvoiceDTO(inv *invoice.Invoice) *InvoiceDTO {
	if inv == nil {
		return nil
	}
	return &InvoiceDTO{
		ID:            inv.ID(),
		Number:        inv.Number(),
		ProgramID:     inv.ProgramID(),
		MonthlyMenuID: inv.MonthlyMenuID(),
		PeriodStart:   biztime.FormatDate(inv.PeriodStart()),
		PeriodEnd:     biztime.FormatDate(inv.PeriodEnd()),
		Status:        string(inv.Status()),
		Currency:      inv.Currency(),
		Total:         inv.Total().StringFixed(2),
		MealCount:     inv.MealCount(),
		Lines:         mapper.MapSlice(inv.Lines(), ToLineItemDTO),
		CreatedAt:     inv.CreatedAt(),
	}
}

func ToPeriodDTO(p invoice.Period) PeriodDTO {
	return PeriodDTO{Start: biztime.FormatDate(p.Start), End: biztime.FormatDate(p.End)}
}
