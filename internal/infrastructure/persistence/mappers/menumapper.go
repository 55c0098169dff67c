package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/menu"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/biztime"
)

// MenuMapper converts monthly menus and their days.
type MenuMapper interface {
	ToEntity(model *models.MonthlyMenuModel) (*menu.MonthlyMenu, error)
	ToModel(entity *menu.MonthlyMenu) (*models.MonthlyMenuModel, error)
}

type menuMapper struct{}

func NewMenuMapper() MenuMapper {
	return &menuMapper{}
}

func (m *menuMapper) ToEntity(model *models.MonthlyMenuModel) (*menu.MonthlyMenu, error) {
	if model == nil {
		return nil, nil
	}
	days := make([]menu.MenuDay, 0, len(model.Days))
	for _, dm := range model.Days {
		var stored map[string]models.AssignmentJSON
		if len(dm.Assignments) > 0 {
			if err := json.Unmarshal(dm.Assignments, &stored); err != nil {
				return nil, fmt.Errorf("failed to unmarshal assignments for %s: %w", biztime.FormatDate(dm.Date), err)
			}
		}
		day := menu.NewMenuDay(biztime.DateOf(dm.Date))
		for mt, a := range stored {
			day.Assignments[cacfp.MealType(mt)] = menu.Assignment{
				MealItemID:           a.MealItemID,
				MealName:             a.MealName,
				UsedVeganAlternative: a.UsedVeganAlternative,
			}
		}
		days = append(days, day)
	}

	entity, err := menu.ReconstructMonthlyMenu(
		model.ID,
		model.TenantID,
		model.ProgramID,
		model.Year,
		time.Month(model.Month),
		menu.Status(model.Status),
		days,
		model.Version,
		model.FinalizedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct monthly menu entity: %w", err)
	}
	return entity, nil
}

func (m *menuMapper) ToModel(entity *menu.MonthlyMenu) (*models.MonthlyMenuModel, error) {
	if entity == nil {
		return nil, nil
	}
	model := &models.MonthlyMenuModel{
		ID:          entity.ID(),
		TenantID:    entity.TenantID(),
		ProgramID:   entity.ProgramID(),
		Year:        entity.Year(),
		Month:       int(entity.Month()),
		Status:      string(entity.Status()),
		Version:     entity.Version(),
		FinalizedAt: entity.FinalizedAt(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
	for _, d := range entity.Days() {
		stored := make(map[string]models.AssignmentJSON, len(d.Assignments))
		for mt, a := range d.Assignments {
			stored[string(mt)] = models.AssignmentJSON{
				MealItemID:           a.MealItemID,
				MealName:             a.MealName,
				UsedVeganAlternative: a.UsedVeganAlternative,
			}
		}
		data, err := json.Marshal(stored)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal assignments: %w", err)
		}
		model.Days = append(model.Days, models.MenuDayModel{
			MonthlyMenuID: entity.ID(),
			Date:          d.Date,
			Assignments:   datatypes.JSON(data),
		})
	}
	return model, nil
}
