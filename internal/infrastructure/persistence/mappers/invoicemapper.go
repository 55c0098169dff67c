package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/mapper"
)

type InvoiceMapper interface {
	ToEntity(model *models.InvoiceModel) (*invoice.Invoice, error)
	ToModel(entity *invoice.Invoice) (*models.InvoiceModel, error)
}

type invoiceMapper struct{}

func NewInvoiceMapper() InvoiceMapper {
	return &invoiceMapper{}
}

func (m *invoiceMapper) ToEntity(model *models.InvoiceModel) (*invoice.Invoice, error) {
	if model == nil {
		return nil, nil
	}
	var stored []models.LineItemJSON
	if len(model.LineItems) > 0 {
		if err := json.Unmarshal(model.LineItems, &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal line items: %w", err)
		}
	}
	lines, err := mapper.MapSliceWithError(stored, lineItemFromJSON)
	if err != nil {
		return nil, err
	}

	menuID := ""
	if model.MonthlyMenuID != nil {
		menuID = *model.MonthlyMenuID
	}
	entity, err := invoice.ReconstructInvoice(
		model.ID,
		model.TenantID,
		model.ProgramID,
		menuID,
		model.InvoiceNumber,
		invoice.Period{Start: biztime.DateOf(model.PeriodStart), End: biztime.DateOf(model.PeriodEnd)},
		lines,
		model.Total,
		model.Currency,
		invoice.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct invoice entity: %w", err)
	}
	return entity, nil
}

func lineItemFromJSON(l models.LineItemJSON) (invoice.LineItem, error) {
	date, err := biztime.ParseDate(l.ServiceDate)
	if err != nil {
		return invoice.LineItem{}, fmt.Errorf("failed to parse line item date: %w", err)
	}
	byType := make(map[cacfp.MealType]int, len(l.MealsByType))
	for mt, n := range l.MealsByType {
		byType[cacfp.MealType(mt)] = n
	}
	return invoice.LineItem{
		ServiceDate: date,
		MealsByType: byType,
		MealCount:   l.MealCount,
		UnitPrice:   l.UnitPrice,
		Amount:      l.Amount,
	}, nil
}

func (m *invoiceMapper) ToModel(entity *invoice.Invoice) (*models.InvoiceModel, error) {
	if entity == nil {
		return nil, nil
	}
	lines := entity.Lines()
	stored := make([]models.LineItemJSON, 0, len(lines))
	for _, l := range lines {
		byType := make(map[string]int, len(l.MealsByType))
		for mt, n := range l.MealsByType {
			byType[string(mt)] = n
		}
		stored = append(stored, models.LineItemJSON{
			ServiceDate: biztime.FormatDate(l.ServiceDate),
			MealsByType: byType,
			MealCount:   l.MealCount,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal line items: %w", err)
	}

	var menuID *string
	if id := entity.MonthlyMenuID(); id != "" {
		menuID = &id
	}
	return &models.InvoiceModel{
		ID:            entity.ID(),
		TenantID:      entity.TenantID(),
		ProgramID:     entity.ProgramID(),
		MonthlyMenuID: menuID,
		InvoiceNumber: entity.Number(),
		PeriodStart:   entity.PeriodStart(),
		PeriodEnd:     entity.PeriodEnd(),
		LineItems:     datatypes.JSON(data),
		Total:         entity.Total(),
		Currency:      entity.Currency(),
		Status:        string(entity.Status()),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}
