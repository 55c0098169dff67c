package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/infrastructure/persistence/mappers"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/db"
	"mealplan/internal/shared/logger"
)

// CatalogRepositoryImpl reads the seeded CACFP reference tables.
type CatalogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCatalogRepository(db *gorm.DB, logger logger.Interface) cacfp.Source {
	return &CatalogRepositoryImpl{db: db, logger: logger}
}

func (r *CatalogRepositoryImpl) Load(ctx context.Context) (*cacfp.Catalog, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var groups []models.AgeGroupModel
	if err := tx.Order("sort_order ASC, id ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to load age groups: %w", err)
	}
	var types []models.ComponentTypeModel
	if err := tx.Order("sort_order ASC, id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to load component types: %w", err)
	}
	var rules []models.PortionRuleModel
	if err := tx.Order("id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to load portion rules: %w", err)
	}

	catalog, err := mappers.CatalogToEntity(groups, types, rules)
	if err != nil {
		r.logger.Errorw("stored rule catalog is invalid", "error", err)
		return nil, fmt.Errorf("failed to build rule catalog: %w", err)
	}
	r.logger.Debugw("rule catalog loaded", "age_groups", len(groups), "component_types", len(types), "rules", len(rules))
	return catalog, nil
}
