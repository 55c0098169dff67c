// Package cacfp holds the USDA CACFP rule catalog and the portion
// compliance evaluator built on top of it.
package cacfp

import (
	"strings"

	"mealplan/internal/shared/errors"
)

// MealType is a CACFP meal occasion.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeSnack     MealType = "snack"
	MealTypeSupper    MealType = "supper"
)

var mealTypeOrder = map[MealType]int{
	MealTypeBreakfast: 0,
	MealTypeLunch:     1,
	MealTypeSnack:     2,
	MealTypeSupper:    3,
}

// MealTypes lists every meal type in serving order.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeSupper}
}

// ParseMealType accepts any letter case ("Lunch", "LUNCH").
func ParseMealType(s string) (MealType, error) {
	mt := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !mt.IsValid() {
		return "", errors.NewValidationError("meal type not recognized", s)
	}
	return mt, nil
}

func (m MealType) IsValid() bool {
	_, ok := mealTypeOrder[m]
	return ok
}

func (m MealType) String() string {
	return string(m)
}

// Before orders meal types by when they are served in a day.
func (m MealType) Before(other MealType) bool {
	return mealTypeOrder[m] < mealTypeOrder[other]
}
