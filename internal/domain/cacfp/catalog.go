package cacfp

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AgeGroup is a CACFP population bracket. MaxMonths is nil for the open
// ended adult bracket.
type AgeGroup struct {
	ID        int
	Label     string
	MinMonths int
	MaxMonths *int
	SortOrder int
}

// ComponentType is a food category used for rule matching.
type ComponentType struct {
	ID        int
	Label     string
	SortOrder int
}

// PortionRule is the minimum portion of one component type for an
// (age group, meal type) pair. A zero minimum marks the component optional.
// AlsoCounts lists further component types whose quantities count toward
// the rule, as in "fruit or vegetable" at breakfast.
type PortionRule struct {
	AgeGroupID      int
	MealType        MealType
	ComponentTypeID int
	AlsoCounts      []int
	Minimum         Quantity
	Maximum         *decimal.Decimal
	Notes           string
}

// ComponentTypeIDs is the rule's own type followed by AlsoCounts.
func (r PortionRule) ComponentTypeIDs() []int {
	return append([]int{r.ComponentTypeID}, r.AlsoCounts...)
}

// Mandatory reports whether the rule has a positive minimum.
func (r PortionRule) Mandatory() bool {
	return r.Minimum.Amount.IsPositive()
}

type ruleKey struct {
	ageGroupID int
	mealType   MealType
}

// Catalog is the immutable rule set. It is safe for concurrent use.
type Catalog struct {
	ageGroups      map[int]AgeGroup
	componentTypes map[int]ComponentType
	rules          map[ruleKey][]PortionRule
}

// NewCatalog validates and indexes reference data.
func NewCatalog(ageGroups []AgeGroup, componentTypes []ComponentType, rules []PortionRule) (*Catalog, error) {
	c := &Catalog{
		ageGroups:      make(map[int]AgeGroup, len(ageGroups)),
		componentTypes: make(map[int]ComponentType, len(componentTypes)),
		rules:          make(map[ruleKey][]PortionRule),
	}

	for _, ag := range ageGroups {
		if _, dup := c.ageGroups[ag.ID]; dup {
			return nil, fmt.Errorf("duplicate age group id %d", ag.ID)
		}
		c.ageGroups[ag.ID] = ag
	}
	for _, ct := range componentTypes {
		if _, dup := c.componentTypes[ct.ID]; dup {
			return nil, fmt.Errorf("duplicate component type id %d", ct.ID)
		}
		c.componentTypes[ct.ID] = ct
	}

	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if _, ok := c.ageGroups[r.AgeGroupID]; !ok {
			return nil, fmt.Errorf("portion rule references unknown age group %d", r.AgeGroupID)
		}
		if _, ok := c.componentTypes[r.ComponentTypeID]; !ok {
			return nil, fmt.Errorf("portion rule references unknown component type %d", r.ComponentTypeID)
		}
		if !r.MealType.IsValid() {
			return nil, fmt.Errorf("portion rule has invalid meal type %q", r.MealType)
		}
		if !r.Minimum.Unit.IsValid() {
			return nil, fmt.Errorf("portion rule has invalid unit %q", r.Minimum.Unit)
		}
		if r.Minimum.Amount.IsNegative() {
			return nil, fmt.Errorf("portion rule minimum cannot be negative")
		}
		if r.Maximum != nil && r.Maximum.LessThan(r.Minimum.Amount) {
			return nil, fmt.Errorf("portion rule maximum %s below minimum %s", r.Maximum, r.Minimum.Amount)
		}

		k := fmt.Sprintf("%d/%s/%d", r.AgeGroupID, r.MealType, r.ComponentTypeID)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("duplicate portion rule %s", k)
		}
		seen[k] = struct{}{}

		key := ruleKey{ageGroupID: r.AgeGroupID, mealType: r.MealType}
		c.rules[key] = append(c.rules[key], r)
	}

	for key, rs := range c.rules {
		if err := c.checkAlternates(rs); err != nil {
			return nil, err
		}
		sort.Slice(rs, func(i, j int) bool {
			return c.componentLess(rs[i].ComponentTypeID, rs[j].ComponentTypeID)
		})
		c.rules[key] = rs
	}

	return c, nil
}

// checkAlternates requires every component type of one pair to count
// toward at most one rule.
func (c *Catalog) checkAlternates(rules []PortionRule) error {
	owner := make(map[int]int, len(rules))
	for _, r := range rules {
		owner[r.ComponentTypeID] = r.ComponentTypeID
	}
	for _, r := range rules {
		for _, alt := range r.AlsoCounts {
			if _, ok := c.componentTypes[alt]; !ok {
				return fmt.Errorf("portion rule references unknown component type %d", alt)
			}
			if prev, taken := owner[alt]; taken {
				return fmt.Errorf("component type %d counts toward rules for types %d and %d of age group %d %s",
					alt, prev, r.ComponentTypeID, r.AgeGroupID, r.MealType)
			}
			owner[alt] = r.ComponentTypeID
		}
	}
	return nil
}

func (c *Catalog) componentLess(a, b int) bool {
	ca, cb := c.componentTypes[a], c.componentTypes[b]
	if ca.SortOrder != cb.SortOrder {
		return ca.SortOrder < cb.SortOrder
	}
	return a < b
}

func (c *Catalog) AgeGroup(id int) (AgeGroup, bool) {
	ag, ok := c.ageGroups[id]
	return ag, ok
}

func (c *Catalog) ComponentType(id int) (ComponentType, bool) {
	ct, ok := c.componentTypes[id]
	return ct, ok
}

// AgeGroups returns every age group ordered by SortOrder.
func (c *Catalog) AgeGroups() []AgeGroup {
	out := make([]AgeGroup, 0, len(c.ageGroups))
	for _, ag := range c.ageGroups {
		out = append(out, ag)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RulesFor returns the rules for the pair ordered by component type. The
// returned slice must not be modified.
func (c *Catalog) RulesFor(ageGroupID int, mealType MealType) []PortionRule {
	return c.rules[ruleKey{ageGroupID: ageGroupID, mealType: mealType}]
}

// Applies reports whether the catalog has any rule for the pair.
func (c *Catalog) Applies(ageGroupID int, mealType MealType) bool {
	return len(c.RulesFor(ageGroupID, mealType)) > 0
}

// MealTypesFor lists the meal types that have rules for the age group.
func (c *Catalog) MealTypesFor(ageGroupID int) []MealType {
	var out []MealType
	for _, mt := range MealTypes() {
		if c.Applies(ageGroupID, mt) {
			out = append(out, mt)
		}
	}
	return out
}

// RuleCount is the total number of portion rules.
func (c *Catalog) RuleCount() int {
	n := 0
	for _, rs := range c.rules {
		n += len(rs)
	}
	return n
}
