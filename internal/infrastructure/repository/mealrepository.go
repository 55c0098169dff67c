package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/infrastructure/persistence/mappers"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/db"
	"mealplan/internal/shared/logger"
)

type FoodComponentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CateringMapper
	logger logger.Interface
}

func NewFoodComponentRepository(db *gorm.DB, logger logger.Interface) catering.FoodComponentRepository {
	return &FoodComponentRepositoryImpl{db: db, mapper: mappers.NewCateringMapper(), logger: logger}
}

func (r *FoodComponentRepositoryImpl) Create(ctx context.Context, food *catering.FoodComponent) error {
	if err := food.Validate(); err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.FoodToModel(food)).Error; err != nil {
		r.logger.Errorw("failed to create food component", "error", err, "name", food.Name)
		return fmt.Errorf("failed to create food component: %w", err)
	}
	return nil
}

func (r *FoodComponentRepositoryImpl) ListByTenant(ctx context.Context, tenantID string) ([]*catering.FoodComponent, error) {
	var rows []models.FoodComponentModel
	if err := db.GetTxFromContext(ctx, r.db).Scopes(db.ForTenant(tenantID)).Order("name ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list food components", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list food components: %w", err)
	}
	foods := make([]*catering.FoodComponent, 0, len(rows))
	for i := range rows {
		foods = append(foods, r.mapper.FoodToEntity(&rows[i]))
	}
	return foods, nil
}

type MealItemRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CateringMapper
	logger logger.Interface
}

func NewMealItemRepository(db *gorm.DB, logger logger.Interface) catering.MealItemRepository {
	return &MealItemRepositoryImpl{db: db, mapper: mappers.NewCateringMapper(), logger: logger}
}

func (r *MealItemRepositoryImpl) Create(ctx context.Context, item *catering.MealItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(r.mapper.MealToModel(item)).Error; err != nil {
		r.logger.Errorw("failed to create meal item", "error", err, "meal_id", item.ID)
		return fmt.Errorf("failed to create meal item: %w", err)
	}
	r.logger.Infow("meal item created successfully", "meal_id", item.ID, "tenant_id", item.TenantID)
	return nil
}

func (r *MealItemRepositoryImpl) GetByID(ctx context.Context, tenantID, mealID string) (*catering.MealItem, error) {
	var model models.MealItemModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForTenant(tenantID)).
		Preload("Components.Food").
		Where("id = ?", mealID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get meal item by ID", "error", err, "meal_id", mealID)
		return nil, fmt.Errorf("failed to get meal item: %w", err)
	}
	return r.mapper.MealToEntity(&model), nil
}

func (r *MealItemRepositoryImpl) ListByMealTypes(ctx context.Context, tenantID string, mealTypes []cacfp.MealType) ([]*catering.MealItem, error) {
	if len(mealTypes) == 0 {
		return []*catering.MealItem{}, nil
	}
	names := make([]string, len(mealTypes))
	for i, mt := range mealTypes {
		names[i] = string(mt)
	}

	var rows []models.MealItemModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForTenant(tenantID)).
		Preload("Components.Food").
		Where("meal_type IN ?", names).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list meal items", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list meal items: %w", err)
	}

	items := make([]*catering.MealItem, 0, len(rows))
	for i := range rows {
		items = append(items, r.mapper.MealToEntity(&rows[i]))
	}
	return items, nil
}
