package mappers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/biztime"
)

// CateringMapper converts tenant records between domain and persistence.
type CateringMapper interface {
	FoodToEntity(model *models.FoodComponentModel) *catering.FoodComponent
	FoodToModel(entity *catering.FoodComponent) *models.FoodComponentModel
	MealToEntity(model *models.MealItemModel) *catering.MealItem
	MealToModel(entity *catering.MealItem) *models.MealItemModel
	ProgramToEntity(model *models.ProgramModel) (*catering.Program, error)
	ProgramToModel(entity *catering.Program) (*models.ProgramModel, error)
}

type cateringMapper struct{}

func NewCateringMapper() CateringMapper {
	return &cateringMapper{}
}

func (m *cateringMapper) FoodToEntity(model *models.FoodComponentModel) *catering.FoodComponent {
	if model == nil {
		return nil
	}
	return &catering.FoodComponent{
		ID:              model.ID,
		TenantID:        model.TenantID,
		Name:            model.Name,
		ComponentTypeID: model.ComponentTypeID,
		PortionSize:     model.PortionSize,
		Unit:            cacfp.Unit(model.Unit),
		IsVegan:         model.IsVegan,
	}
}

func (m *cateringMapper) FoodToModel(entity *catering.FoodComponent) *models.FoodComponentModel {
	if entity == nil {
		return nil
	}
	return &models.FoodComponentModel{
		ID:              entity.ID,
		TenantID:        entity.TenantID,
		Name:            entity.Name,
		ComponentTypeID: entity.ComponentTypeID,
		PortionSize:     entity.PortionSize,
		Unit:            string(entity.Unit),
		IsVegan:         entity.IsVegan,
	}
}

// MealToEntity expects Components.Food to be preloaded.
func (m *cateringMapper) MealToEntity(model *models.MealItemModel) *catering.MealItem {
	if model == nil {
		return nil
	}
	rows := make([]models.MealComponentModel, len(model.Components))
	copy(rows, model.Components)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	item := &catering.MealItem{
		ID:       model.ID,
		TenantID: model.TenantID,
		Name:     model.Name,
		MealType: cacfp.MealType(model.MealType),
	}
	for i := range rows {
		p := catering.Portion{Food: *m.FoodToEntity(&rows[i].Food), Quantity: rows[i].Quantity}
		if rows[i].IsAlternative {
			item.VeganAlternative = append(item.VeganAlternative, p)
		} else {
			item.Components = append(item.Components, p)
		}
	}
	return item
}

// MealToModel leaves the Food association empty so saving a meal never
// writes food rows.
func (m *cateringMapper) MealToModel(entity *catering.MealItem) *models.MealItemModel {
	if entity == nil {
		return nil
	}
	model := &models.MealItemModel{
		ID:       entity.ID,
		TenantID: entity.TenantID,
		Name:     entity.Name,
		MealType: string(entity.MealType),
	}
	pos := 0
	add := func(ps []catering.Portion, alt bool) {
		for _, p := range ps {
			model.Components = append(model.Components, models.MealComponentModel{
				MealItemID:      entity.ID,
				FoodComponentID: p.Food.ID,
				Quantity:        p.Quantity,
				IsAlternative:   alt,
				Position:        pos,
			})
			pos++
		}
	}
	add(entity.Components, false)
	add(entity.VeganAlternative, true)
	return model
}

func (m *cateringMapper) ProgramToEntity(model *models.ProgramModel) (*catering.Program, error) {
	if model == nil {
		return nil, nil
	}
	serviceDays, err := unmarshalWeekdays(model.ServiceDays)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal service days: %w", err)
	}
	veganDays, err := unmarshalWeekdays(model.VeganDays)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal vegan days: %w", err)
	}
	var mealTypes []cacfp.MealType
	if len(model.MealTypes) > 0 {
		if err := json.Unmarshal(model.MealTypes, &mealTypes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meal types: %w", err)
		}
	}

	p := &catering.Program{
		ID:                model.ID,
		TenantID:          model.TenantID,
		Name:              model.Name,
		AgeGroupID:        model.AgeGroupID,
		ServiceDays:       serviceDays,
		MealTypes:         mealTypes,
		InvoicePrefix:     model.InvoicePrefix,
		PricePerMeal:      model.PricePerMeal,
		Enrollment:        model.Enrollment,
		Dietary:           catering.DietaryPolicy{VeganRequired: model.VeganRequired, VeganDays: veganDays},
		StartDate:         biztime.DateOf(model.StartDate),
		LastInvoiceNumber: int(model.LastInvoiceNumber),
		Active:            model.Active,
	}
	if model.EndDate != nil {
		end := biztime.DateOf(*model.EndDate)
		p.EndDate = &end
	}
	for _, h := range model.Holidays {
		p.Holidays = append(p.Holidays, catering.Holiday{Date: biztime.DateOf(h.Date), Description: h.Description})
	}
	sort.Slice(p.Holidays, func(i, j int) bool { return p.Holidays[i].Date.Before(p.Holidays[j].Date) })
	return p, nil
}

func (m *cateringMapper) ProgramToModel(entity *catering.Program) (*models.ProgramModel, error) {
	if entity == nil {
		return nil, nil
	}
	serviceDays, err := marshalWeekdays(entity.ServiceDays)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal service days: %w", err)
	}
	veganDays, err := marshalWeekdays(entity.Dietary.VeganDays)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vegan days: %w", err)
	}
	mealTypes, err := json.Marshal(entity.MealTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meal types: %w", err)
	}

	model := &models.ProgramModel{
		ID:                entity.ID,
		TenantID:          entity.TenantID,
		Name:              entity.Name,
		AgeGroupID:        entity.AgeGroupID,
		ServiceDays:       serviceDays,
		MealTypes:         datatypes.JSON(mealTypes),
		InvoicePrefix:     entity.InvoicePrefix,
		PricePerMeal:      entity.PricePerMeal,
		Enrollment:        entity.Enrollment,
		VeganRequired:     entity.Dietary.VeganRequired,
		VeganDays:         veganDays,
		StartDate:         entity.StartDate,
		EndDate:           entity.EndDate,
		LastInvoiceNumber: int64(entity.LastInvoiceNumber),
		Active:            entity.Active,
	}
	for _, h := range entity.Holidays {
		model.Holidays = append(model.Holidays, models.HolidayModel{
			ProgramID:   entity.ID,
			Date:        biztime.DateOf(h.Date),
			Description: h.Description,
		})
	}
	return model, nil
}

// weekdays are stored by lower-case name so the JSON stays readable.
func marshalWeekdays(days []time.Weekday) (datatypes.JSON, error) {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, weekdayName(d))
	}
	data, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func unmarshalWeekdays(data datatypes.JSON) ([]time.Weekday, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	days := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		d, err := catering.ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func weekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}
