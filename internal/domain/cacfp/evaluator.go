package cacfp

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"mealplan/internal/shared/errors"
)

// MealComponent is one declared food in a meal.
type MealComponent struct {
	ComponentTypeID int
	Quantity        Quantity
	FoodName        string
}

type ComponentStatus string

const (
	StatusSatisfied    ComponentStatus = "satisfied"
	StatusExcessive    ComponentStatus = "excessive"
	StatusOptional     ComponentStatus = "optional"
	StatusInsufficient ComponentStatus = "insufficient"
	StatusMissing      ComponentStatus = "missing"
)

// ComponentResult is the outcome for one required component type.
type ComponentResult struct {
	ComponentTypeID int
	Label           string
	Required        Quantity
	Maximum         *decimal.Decimal
	Actual          Quantity
	Status          ComponentStatus
	Foods           []string
	Notes           string
}

// ComplianceReport is the result of evaluating one meal. Applicable is
// false when the catalog has no rules for the pair; such a meal is
// compliant by definition.
type ComplianceReport struct {
	AgeGroupID int
	MealType   MealType
	Applicable bool
	Satisfied  []ComponentResult
	Missing    []ComponentResult
	Warnings   []string
}

func (r *ComplianceReport) IsCompliant() bool {
	return len(r.Missing) == 0
}

// Evaluator checks meals against a Catalog. It holds no mutable state.
type Evaluator struct {
	catalog *Catalog
}

func NewEvaluator(catalog *Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// Evaluate sums declared quantities per component type and compares them
// with the rules for (ageGroupID, mealType). It fails with a validation
// error on unknown reference data, non-positive quantities and unit
// mismatches.
func (e *Evaluator) Evaluate(components []MealComponent, ageGroupID int, mealType MealType) (*ComplianceReport, error) {
	if !mealType.IsValid() {
		return nil, errors.NewValidationError("meal type not recognized", string(mealType))
	}
	if _, ok := e.catalog.AgeGroup(ageGroupID); !ok {
		return nil, errors.NewValidationError("age group not recognized", fmt.Sprintf("age_group_id=%d", ageGroupID))
	}

	type tally struct {
		total []Quantity
		foods []string
	}
	byType := make(map[int]*tally)
	for _, mc := range components {
		if _, ok := e.catalog.ComponentType(mc.ComponentTypeID); !ok {
			return nil, errors.NewValidationError("component type not recognized", fmt.Sprintf("component_type_id=%d", mc.ComponentTypeID))
		}
		if !mc.Quantity.Amount.IsPositive() {
			return nil, errors.NewValidationError("portion size must be greater than zero", mc.FoodName)
		}
		t := byType[mc.ComponentTypeID]
		if t == nil {
			t = &tally{}
			byType[mc.ComponentTypeID] = t
		}
		t.total = append(t.total, mc.Quantity)
		if mc.FoodName != "" {
			t.foods = append(t.foods, mc.FoodName)
		}
	}

	report := &ComplianceReport{
		AgeGroupID: ageGroupID,
		MealType:   mealType,
	}

	rules := e.catalog.RulesFor(ageGroupID, mealType)
	if len(rules) == 0 {
		return report, nil
	}
	report.Applicable = true

	for _, rule := range rules {
		label := e.ruleLabel(rule)
		actual := Zero(rule.Minimum.Unit)
		var foods []string
		for _, typeID := range rule.ComponentTypeIDs() {
			t := byType[typeID]
			if t == nil {
				continue
			}
			for _, q := range t.total {
				sum, err := actual.Add(q)
				if err != nil {
					return nil, errors.NewValidationError(
						"unit mismatch",
						fmt.Sprintf("%s requires %s, declared %s", label, rule.Minimum.Unit, q.Unit),
					)
				}
				actual = sum
			}
			foods = append(foods, t.foods...)
		}

		res := ComponentResult{
			ComponentTypeID: rule.ComponentTypeID,
			Label:           label,
			Required:        rule.Minimum,
			Maximum:         rule.Maximum,
			Actual:          actual,
			Foods:           foods,
			Notes:           rule.Notes,
		}

		switch {
		case !rule.Mandatory() && actual.Amount.IsZero():
			res.Status = StatusOptional
		case actual.Amount.LessThan(rule.Minimum.Amount):
			if actual.Amount.IsZero() {
				res.Status = StatusMissing
			} else {
				res.Status = StatusInsufficient
			}
		case rule.Maximum != nil && actual.Amount.GreaterThan(*rule.Maximum):
			res.Status = StatusExcessive
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s: portion exceeds maximum of %s%s, got %s", label, rule.Maximum, rule.Minimum.Unit, actual,
			))
		default:
			res.Status = StatusSatisfied
		}

		if res.Status == StatusMissing || res.Status == StatusInsufficient {
			report.Missing = append(report.Missing, res)
		} else {
			report.Satisfied = append(report.Satisfied, res)
		}
	}

	return report, nil
}

// ruleLabel joins the labels of every component type the rule accepts.
func (e *Evaluator) ruleLabel(rule PortionRule) string {
	ids := rule.ComponentTypeIDs()
	labels := make([]string, 0, len(ids))
	for _, typeID := range ids {
		ct, _ := e.catalog.ComponentType(typeID)
		labels = append(labels, ct.Label)
	}
	return strings.Join(labels, " or ")
}
