// Package catering holds the tenant records the planner reads: food
// components, composed meal items and client programs.
package catering

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/shared/errors"
)

// FoodComponent is a single food with its default portion.
type FoodComponent struct {
	ID              string
	TenantID        string
	Name            string
	ComponentTypeID int
	PortionSize     decimal.Decimal
	Unit            cacfp.Unit
	IsVegan         bool
}

func (f *FoodComponent) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.NewValidationError("food component name is required")
	}
	if f.TenantID == "" {
		return errors.NewValidationError("food component tenant is required", f.Name)
	}
	if !f.PortionSize.IsPositive() {
		return errors.NewValidationError("portion size must be greater than zero", f.Name)
	}
	if !f.Unit.IsValid() {
		return errors.NewValidationError("portion unit not recognized", string(f.Unit))
	}
	return nil
}

// Portion is a food component served in a meal at a given quantity.
type Portion struct {
	Food     FoodComponent
	Quantity decimal.Decimal
}

func (p Portion) mealComponent() cacfp.MealComponent {
	return cacfp.MealComponent{
		ComponentTypeID: p.Food.ComponentTypeID,
		Quantity:        cacfp.NewQuantity(p.Quantity, p.Food.Unit),
		FoodName:        p.Food.Name,
	}
}

// MealItem is a composed recipe. VeganAlternative is an optional second
// component set served instead of Components when a vegan meal is required.
type MealItem struct {
	ID               string
	TenantID         string
	Name             string
	MealType         cacfp.MealType
	Components       []Portion
	VeganAlternative []Portion
}

func allVegan(ps []Portion) bool {
	for _, p := range ps {
		if !p.Food.IsVegan {
			return false
		}
	}
	return len(ps) > 0
}

// IsVegan reports whether the base component set is entirely vegan.
func (m *MealItem) IsVegan() bool {
	return allVegan(m.Components)
}

// HasVeganAlternative reports whether a usable vegan substitution exists.
func (m *MealItem) HasVeganAlternative() bool {
	return allVegan(m.VeganAlternative)
}

// ComponentsFor picks the component set to serve. When vegan is required
// the base set is used if it is vegan, else the alternative. ok is false
// when the meal cannot be served vegan at all.
func (m *MealItem) ComponentsFor(vegan bool) (portions []Portion, usedAlternative bool, ok bool) {
	switch {
	case !vegan || m.IsVegan():
		return m.Components, false, true
	case m.HasVeganAlternative():
		return m.VeganAlternative, true, true
	default:
		return nil, false, false
	}
}

// MealComponents converts a component set into evaluator input.
func MealComponents(portions []Portion) []cacfp.MealComponent {
	out := make([]cacfp.MealComponent, 0, len(portions))
	for _, p := range portions {
		out = append(out, p.mealComponent())
	}
	return out
}

// Validate checks the structural invariants of the meal.
func (m *MealItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.NewValidationError("meal item name is required")
	}
	if !m.MealType.IsValid() {
		return errors.NewValidationError("meal type not recognized", string(m.MealType))
	}
	if len(m.Components) == 0 {
		return errors.NewValidationError("meal item must reference at least one food component", m.Name)
	}
	for _, set := range [][]Portion{m.Components, m.VeganAlternative} {
		for _, p := range set {
			if p.Food.TenantID != m.TenantID {
				return errors.NewValidationError(
					"food component belongs to another tenant",
					fmt.Sprintf("meal %q uses %q", m.Name, p.Food.Name),
				)
			}
			if !p.Quantity.IsPositive() {
				return errors.NewValidationError("portion quantity must be greater than zero", p.Food.Name)
			}
		}
	}
	return nil
}

// Ingredients lists the food names of the chosen component set.
func (m *MealItem) Ingredients(vegan bool) []string {
	portions, _, ok := m.ComponentsFor(vegan)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(portions))
	for _, p := range portions {
		names = append(names, p.Food.Name)
	}
	return names
}
