package dto

import (
	"mealplan/internal/domain/cacfp"
	"mealplan/internal/shared/mapper"
)

type QuantityDTO struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type ComponentResultDTO struct {
	ComponentTypeID int         `json:"component_type_id"`
	Label           string      `json:"label"`
	Required        QuantityDTO `json:"required"`
	Maximum         *string     `json:"maximum,omitempty"`
	Actual          QuantityDTO `json:"actual"`
	Status          string      `json:"status"`
	Foods           []string    `json:"foods,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

type ComplianceReportDTO struct {
	MealID               string               `json:"meal_id"`
	MealName             string               `json:"meal_name"`
	AgeGroupID           int                  `json:"age_group_id"`
	MealType             string               `json:"meal_type"`
	Applicable           bool                 `json:"applicable"`
	IsCompliant          bool                 `json:"is_compliant"`
	UsedVeganAlternative bool                 `json:"used_vegan_alternative"`
	Satisfied            []ComponentResultDTO `json:"satisfied"`
	Missing              []ComponentResultDTO `json:"missing"`
	Warnings             []string             `json:"warnings,omitempty"`
}

func ToQuantityDTO(q cacfp.Quantity) QuantityDTO {
	return QuantityDTO{Amount: q.Amount.String(), Unit: string(q.Unit)}
}

func ToComponentResultDTO(r cacfp.ComponentResult) ComponentResultDTO {
	out := ComponentResultDTO{
		ComponentTypeID: r.ComponentTypeID,
		Label:           r.Label,
		Required:        ToQuantityDTO(r.Required),
		Actual:          ToQuantityDTO(r.Actual),
		Status:          string(r.Status),
		Foods:           r.Foods,
		Notes:           r.Notes,
	}
	if r.Maximum != nil {
		max := r.Maximum.String()
		out.Maximum = &max
	}
	return out
}

// ToComplianceReportDTO never returns nil result slices so clients can
// iterate without checks.
func ToComplianceReportDTO(r *cacfp.ComplianceReport) *ComplianceReportDTO {
	if r == nil {
		return nil
	}
	out := &ComplianceReportDTO{
		AgeGroupID:  r.AgeGroupID,
		MealType:    r.MealType.String(),
		Applicable:  r.Applicable,
		IsCompliant: r.IsCompliant(),
		Satisfied:   mapper.MapSlice(r.Satisfied, ToComponentResultDTO),
		Missing:     mapper.MapSlice(r.Missing, ToComponentResultDTO),
		Warnings:    r.Warnings,
	}
	if out.Satisfied == nil {
		out.Satisfied = []ComponentResultDTO{}
	}
	if out.Missing == nil {
		out.Missing = []ComponentResultDTO{}
	}
	return out
}
