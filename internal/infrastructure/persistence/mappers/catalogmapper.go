package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/infrastructure/persistence/models"
)

// CatalogToEntity builds the rule catalog from its three tables.
func CatalogToEntity(groups []models.AgeGroupModel, types []models.ComponentTypeModel,
	rules []models.PortionRuleModel) (*cacfp.Catalog, error) {

	ags := make([]cacfp.AgeGroup, 0, len(groups))
	for _, g := range groups {
		ags = append(ags, cacfp.AgeGroup{
			ID:        g.ID,
			Label:     g.Label,
			MinMonths: g.MinMonths,
			MaxMonths: g.MaxMonths,
			SortOrder: g.SortOrder,
		})
	}
	cts := make([]cacfp.ComponentType, 0, len(types))
	for _, t := range types {
		cts = append(cts, cacfp.ComponentType{ID: t.ID, Label: t.Label, SortOrder: t.SortOrder})
	}
	prs := make([]cacfp.PortionRule, 0, len(rules))
	for _, r := range rules {
		var also []int
		if len(r.AlsoCounts) > 0 {
			if err := json.Unmarshal(r.AlsoCounts, &also); err != nil {
				return nil, fmt.Errorf("portion rule %d has invalid also_counts: %w", r.ID, err)
			}
		}
		prs = append(prs, cacfp.PortionRule{
			AgeGroupID:      r.AgeGroupID,
			MealType:        cacfp.MealType(r.MealType),
			ComponentTypeID: r.ComponentTypeID,
			AlsoCounts:      also,
			Minimum:         cacfp.NewQuantity(r.MinimumAmount, cacfp.Unit(r.Unit)),
			Maximum:         r.MaximumAmount,
			Notes:           r.Notes,
		})
	}
	return cacfp.NewCatalog(ags, cts, prs)
}

// AlsoCountsToJSON encodes the extra component types of a rule; nil when
// the rule has none.
func AlsoCountsToJSON(ids []int) (datatypes.JSON, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
