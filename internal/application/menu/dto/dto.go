package dto

import (
	"time"

	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/mapper"
)

type AssignmentDTO struct {
	MealItemID           string `json:"meal_item_id"`
	MealName             string `json:"meal_name"`
	UsedVeganAlternative bool   `json:"used_vegan_alternative"`
}

type MenuDayDTO struct {
	Date    string                   `json:"date"`
	Weekday string                   `json:"weekday"`
	Meals   map[string]AssignmentDTO `json:"meals"`
}

type MonthlyMenuDTO struct {
	ID          string       `json:"id"`
	ProgramID   string       `json:"program_id"`
	Year        int          `json:"year"`
	Month       int          `json:"month"`
	Status      string       `json:"status"`
	Version     int          `json:"version"`
	MealSlots   int          `json:"meal_slots"`
	FinalizedAt *time.Time   `json:"finalized_at,omitempty"`
	Days        []MenuDayDTO `json:"days"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type SlotFailureDTO struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	Reason   string `json:"reason"`
}

type RejectionDTO struct {
	MealItemID string `json:"meal_item_id"`
	Reason     string `json:"reason"`
}

type WeekIngredientsDTO struct {
	WeekStart   string              `json:"week_start"`
	Dates       []string            `json:"dates"`
	Ingredients []string            `json:"ingredients"`
	ByMealType  map[string][]string `json:"by_meal_type"`
}

func ToMenuDayDTO(d menu.MenuDay) MenuDayDTO {
	meals := make(map[string]AssignmentDTO, len(d.Assignments))
	for mt, a := range d.Assignments {
		meals[mt.String()] = AssignmentDTO{
			MealItemID:           a.MealItemID,
			MealName:             a.MealName,
			UsedVeganAlternative: a.UsedVeganAlternative,
		}
	}
	return MenuDayDTO{
		Date:    biztime.FormatDate(d.Date),
		Weekday: d.Date.Weekday().String(),
		Meals:   meals,
	}
}

func ToMonthlyMenuDTO(m *menu.MonthlyMenu) *MonthlyMenuDTO {
	if m == nil {
		return nil
	}
	days := mapper.MapSlice(m.Days(), ToMenuDayDTO)
	if days == nil {
		days = []MenuDayDTO{}
	}
	return &MonthlyMenuDTO{
		ID:          m.ID(),
		ProgramID:   m.ProgramID(),
		Year:        m.Year(),
		Month:       int(m.Month()),
		Status:      string(m.Status()),
		Version:     m.Version(),
		MealSlots:   m.MealCount(),
		FinalizedAt: m.FinalizedAt(),
		Days:        days,
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
}

func ToSlotFailureDTO(f menu.SlotFailure) SlotFailureDTO {
	return SlotFailureDTO{
		Date:     biztime.FormatDate(f.Date),
		MealType: f.MealType.String(),
		Reason:   f.Reason,
	}
}

func ToSlotFailureDTOs(fs []menu.SlotFailure) []SlotFailureDTO {
	out := mapper.MapSlice(fs, ToSlotFailureDTO)
	if out == nil {
		return []SlotFailureDTO{}
	}
	return out
}

func ToRejectionDTOs(rs []menu.Rejection) []RejectionDTO {
	return mapper.MapSlice(rs, func(r menu.Rejection) RejectionDTO {
		return RejectionDTO{MealItemID: r.MealItemID, Reason: r.Reason}
	})
}

func ToWeekIngredientsDTO(w menu.WeekIngredients) WeekIngredientsDTO {
	byType := make(map[string][]string, len(w.ByMealType))
	for mt, names := range w.ByMealType {
		byType[mt.String()] = names
	}
	return WeekIngredientsDTO{
		WeekStart:   biztime.FormatDate(w.WeekStart),
		Dates:       mapper.MapSlice(w.Dates, biztime.FormatDate),
		Ingredients: w.Ingredients,
		ByMealType:  byType,
	}
}
