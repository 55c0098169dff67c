// Package seed loads the embedded CACFP rule catalog into the reference
// tables and creates sample food components and meals for a tenant.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/infrastructure/persistence/mappers"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/infrastructure/repository"
	"mealplan/internal/shared/db"
	"mealplan/internal/shared/id"
	"mealplan/internal/shared/logger"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed samples.yaml
var samplesYAML []byte

type ageGroupSeed struct {
	ID        int    `yaml:"id"`
	Label     string `yaml:"label"`
	MinMonths int    `yaml:"min_months"`
	MaxMonths *int   `yaml:"max_months"`
	SortOrder int    `yaml:"sort_order"`
}

type componentTypeSeed struct {
	ID        int    `yaml:"id"`
	Label     string `yaml:"label"`
	Unit      string `yaml:"unit"`
	SortOrder int    `yaml:"sort_order"`
}

type portionRuleSeed struct {
	AgeGroupID      int    `yaml:"age_group"`
	MealType        string `yaml:"meal_type"`
	ComponentTypeID int    `yaml:"component_type"`
	AlsoCounts      []int  `yaml:"also_counts"`
	Minimum         string `yaml:"minimum"`
	Maximum         string `yaml:"maximum"`
	Notes           string `yaml:"notes"`
}

type catalogFile struct {
	AgeGroups      []ageGroupSeed      `yaml:"age_groups"`
	ComponentTypes []componentTypeSeed `yaml:"component_types"`
	PortionRules   []portionRuleSeed   `yaml:"portion_rules"`
}

type catalogRows struct {
	groups []models.AgeGroupModel
	types  []models.ComponentTypeModel
	rules  []models.PortionRuleModel
}

func loadCatalogRows() (*catalogRows, error) {
	var f catalogFile
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	rows := &catalogRows{}
	units := make(map[int]string, len(f.ComponentTypes))
	for _, ct := range f.ComponentTypes {
		units[ct.ID] = ct.Unit
		rows.types = append(rows.types, models.ComponentTypeModel{ID: ct.ID, Label: ct.Label, SortOrder: ct.SortOrder})
	}
	for _, ag := range f.AgeGroups {
		rows.groups = append(rows.groups, models.AgeGroupModel{
			ID:        ag.ID,
			Label:     ag.Label,
			MinMonths: ag.MinMonths,
			MaxMonths: ag.MaxMonths,
			SortOrder: ag.SortOrder,
		})
	}

	for _, r := range f.PortionRules {
		unit, ok := units[r.ComponentTypeID]
		if !ok {
			return nil, fmt.Errorf("portion rule references unknown component type %d", r.ComponentTypeID)
		}
		minimum, err := decimal.NewFromString(r.Minimum)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum %q: %w", r.Minimum, err)
		}
		for _, alt := range r.AlsoCounts {
			if units[alt] != unit {
				return nil, fmt.Errorf("component type %d cannot count toward a rule measured in %s", alt, unit)
			}
		}
		also, err := mappers.AlsoCountsToJSON(r.AlsoCounts)
		if err != nil {
			return nil, fmt.Errorf("invalid also_counts: %w", err)
		}
		row := models.PortionRuleModel{
			AgeGroupID:      r.AgeGroupID,
			MealType:        r.MealType,
			ComponentTypeID: r.ComponentTypeID,
			AlsoCounts:      also,
			MinimumAmount:   minimum,
			Unit:            unit,
			Notes:           r.Notes,
		}
		if r.Maximum != "" {
			maximum, err := decimal.NewFromString(r.Maximum)
			if err != nil {
				return nil, fmt.Errorf("invalid maximum %q: %w", r.Maximum, err)
			}
			row.MaximumAmount = &maximum
		}
		rows.rules = append(rows.rules, row)
	}
	return rows, nil
}

// Catalog builds the rule catalog straight from the embedded seed.
func Catalog() (*cacfp.Catalog, error) {
	rows, err := loadCatalogRows()
	if err != nil {
		return nil, err
	}
	return mappers.CatalogToEntity(rows.groups, rows.types, rows.rules)
}

type embeddedSource struct{}

// NewEmbeddedSource serves the embedded catalog without a database.
func NewEmbeddedSource() cacfp.Source {
	return embeddedSource{}
}

func (embeddedSource) Load(context.Context) (*cacfp.Catalog, error) {
	return Catalog()
}

// Result counts the rows written by a seed run.
type Result struct {
	AgeGroups      int
	ComponentTypes int
	PortionRules   int
	Foods          int
	Meals          int
}

type Seeder struct {
	db     *gorm.DB
	tm     *db.TransactionManager
	foods  catering.FoodComponentRepository
	meals  catering.MealItemRepository
	logger logger.Interface
}

func NewSeeder(gdb *gorm.DB, logger logger.Interface) *Seeder {
	return &Seeder{
		db:     gdb,
		tm:     db.NewTransactionManager(gdb),
		foods:  repository.NewFoodComponentRepository(gdb, logger),
		meals:  repository.NewMealItemRepository(gdb, logger),
		logger: logger,
	}
}

// SeedCatalog upserts the reference tables. Running it again rewrites the
// stored values to match the embedded seed.
func (s *Seeder) SeedCatalog(ctx context.Context) (*Result, error) {
	rows, err := loadCatalogRows()
	if err != nil {
		return nil, err
	}
	if _, err := mappers.CatalogToEntity(rows.groups, rows.types, rows.rules); err != nil {
		return nil, fmt.Errorf("embedded catalog is invalid: %w", err)
	}

	err = s.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := db.GetTxFromContext(ctx, s.db)
		byID := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}

		if err := tx.Clauses(byID).Create(&rows.groups).Error; err != nil {
			return fmt.Errorf("failed to upsert age groups: %w", err)
		}
		if err := tx.Clauses(byID).Create(&rows.types).Error; err != nil {
			return fmt.Errorf("failed to upsert component types: %w", err)
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "age_group_id"}, {Name: "meal_type"}, {Name: "component_type_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"also_counts", "minimum_amount", "unit", "maximum_amount", "notes",
			}),
		}).Create(&rows.rules).Error
		if err != nil {
			return fmt.Errorf("failed to upsert portion rules: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("catalog seed failed", "error", err)
		return nil, err
	}

	result := &Result{
		AgeGroups:      len(rows.groups),
		ComponentTypes: len(rows.types),
		PortionRules:   len(rows.rules),
	}
	s.logger.Infow("rule catalog seeded",
		"age_groups", result.AgeGroups,
		"component_types", result.ComponentTypes,
		"portion_rules", result.PortionRules,
	)
	return result, nil
}

type foodSeed struct {
	Name            string `yaml:"name"`
	ComponentTypeID int    `yaml:"component_type"`
	Portion         string `yaml:"portion"`
	Vegan           bool   `yaml:"vegan"`
}

type portionSeed struct {
	Food     string `yaml:"food"`
	Quantity string `yaml:"quantity"`
}

type mealSeed struct {
	Name             string        `yaml:"name"`
	MealType         string        `yaml:"meal_type"`
	Components       []portionSeed `yaml:"components"`
	VeganAlternative []portionSeed `yaml:"vegan_alternative"`
}

type samplesFile struct {
	Foods []foodSeed `yaml:"foods"`
	Meals []mealSeed `yaml:"meals"`
}

// SeedSamples creates the sample foods and meals missing for tenantID.
// Records are matched by name, so repeated runs create nothing new.
func (s *Seeder) SeedSamples(ctx context.Context, tenantID string) (*Result, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant id is required")
	}
	var f samplesFile
	if err := yaml.Unmarshal(samplesYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sample seed: %w", err)
	}

	catalog, err := Catalog()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	err = s.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.foods.ListByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		foods := make(map[string]catering.FoodComponent, len(existing))
		for _, food := range existing {
			foods[food.Name] = *food
		}

		for _, fs := range f.Foods {
			if _, ok := foods[fs.Name]; ok {
				continue
			}
			ct, ok := catalog.ComponentType(fs.ComponentTypeID)
			if !ok {
				return fmt.Errorf("sample food %q references unknown component type %d", fs.Name, fs.ComponentTypeID)
			}
			portion, err := decimal.NewFromString(fs.Portion)
			if err != nil {
				return fmt.Errorf("sample food %q has invalid portion: %w", fs.Name, err)
			}
			food := catering.FoodComponent{
				ID:              id.NewFoodComponentID(),
				TenantID:        tenantID,
				Name:            fs.Name,
				ComponentTypeID: ct.ID,
				PortionSize:     portion,
				Unit:            unitFor(catalog, ct.ID),
				IsVegan:         fs.Vegan,
			}
			if err := s.foods.Create(ctx, &food); err != nil {
				return err
			}
			foods[food.Name] = food
			result.Foods++
		}

		meals, err := s.meals.ListByMealTypes(ctx, tenantID, cacfp.MealTypes())
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(meals))
		for _, m := range meals {
			known[m.Name] = true
		}

		for _, ms := range f.Meals {
			if known[ms.Name] {
				continue
			}
			item, err := buildMeal(tenantID, ms, foods)
			if err != nil {
				return err
			}
			if err := s.meals.Create(ctx, item); err != nil {
				return err
			}
			result.Meals++
		}
		return nil
	})
	if err != nil {
		s.logger.Errorw("sample seed failed", "error", err, "tenant_id", tenantID)
		return nil, err
	}

	s.logger.Infow("sample data seeded", "tenant_id", tenantID, "foods", result.Foods, "meals", result.Meals)
	return result, nil
}

// unitFor returns the unit the catalog measures a component type in.
func unitFor(catalog *cacfp.Catalog, componentTypeID int) cacfp.Unit {
	for _, ag := range catalog.AgeGroups() {
		for _, mt := range catalog.MealTypesFor(ag.ID) {
			for _, r := range catalog.RulesFor(ag.ID, mt) {
				if r.ComponentTypeID == componentTypeID {
					return r.Minimum.Unit
				}
			}
		}
	}
	return ""
}

func buildMeal(tenantID string, ms mealSeed, foods map[string]catering.FoodComponent) (*catering.MealItem, error) {
	mt, err := cacfp.ParseMealType(ms.MealType)
	if err != nil {
		return nil, fmt.Errorf("sample meal %q: %w", ms.Name, err)
	}
	components, err := buildPortions(ms.Name, ms.Components, foods)
	if err != nil {
		return nil, err
	}
	alternative, err := buildPortions(ms.Name, ms.VeganAlternative, foods)
	if err != nil {
		return nil, err
	}
	return &catering.MealItem{
		ID:               id.NewMealItemID(),
		TenantID:         tenantID,
		Name:             ms.Name,
		MealType:         mt,
		Components:       components,
		VeganAlternative: alternative,
	}, nil
}

func buildPortions(meal string, seeds []portionSeed, foods map[string]catering.FoodComponent) ([]catering.Portion, error) {
	var out []catering.Portion
	for _, ps := range seeds {
		food, ok := foods[ps.Food]
		if !ok {
			return nil, fmt.Errorf("sample meal %q references unknown food %q", meal, ps.Food)
		}
		qty := food.PortionSize
		if ps.Quantity != "" {
			parsed, err := decimal.NewFromString(ps.Quantity)
			if err != nil {
				return nil, fmt.Errorf("sample meal %q has invalid quantity for %q: %w", meal, ps.Food, err)
			}
			qty = parsed
		}
		out = append(out, catering.Portion{Food: food, Quantity: qty})
	}
	return out, nil
}
