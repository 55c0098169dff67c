package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealplan/internal/domain/menu"
	"mealplan/internal/infrastructure/persistence/mappers"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/db"
	apperrors "mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type MenuRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.MenuMapper
	logger logger.Interface
}

func NewMenuRepository(db *gorm.DB, logger logger.Interface) menu.Repository {
	return &MenuRepositoryImpl{db: db, mapper: mappers.NewMenuMapper(), logger: logger}
}

func (r *MenuRepositoryImpl) Create(ctx context.Context, m *menu.MonthlyMenu) error {
	model, err := r.mapper.ToModel(m)
	if err != nil {
		return fmt.Errorf("failed to convert monthly menu to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("monthly menu already exists for this program and month",
				fmt.Sprintf("%s %d-%02d", m.ProgramID(), m.Year(), m.Month()))
		}
		r.logger.Errorw("failed to create monthly menu", "error", err, "menu_id", m.ID())
		return fmt.Errorf("failed to create monthly menu: %w", err)
	}

	r.logger.Infow("monthly menu created successfully", "menu_id", m.ID(), "program_id", m.ProgramID())
	return nil
}

// Update rewrites the header under an optimistic version check and
// replaces every day row.
func (r *MenuRepositoryImpl) Update(ctx context.Context, m *menu.MonthlyMenu) error {
	model, err := r.mapper.ToModel(m)
	if err != nil {
		return fmt.Errorf("failed to convert monthly menu to model: %w", err)
	}

	err = db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.MonthlyMenuModel{}).
			Where("id = ? AND tenant_id = ? AND version = ?", m.ID(), m.TenantID(), m.Version()).
			Updates(map[string]any{
				"status":       model.Status,
				"finalized_at": model.FinalizedAt,
				"version":      gorm.Expr("version + 1"),
				"updated_at":   model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update monthly menu: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.NewConcurrencyConflictError("monthly menu was modified concurrently", m.ID())
		}

		if err := tx.Where("monthly_menu_id = ?", m.ID()).Delete(&models.MenuDayModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete menu days: %w", err)
		}
		if len(model.Days) > 0 {
			if err := tx.Create(&model.Days).Error; err != nil {
				return fmt.Errorf("failed to insert menu days: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsConcurrencyConflictError(err) {
			r.logger.Errorw("failed to update monthly menu", "error", err, "menu_id", m.ID())
		}
		return err
	}

	m.IncrementVersion()
	r.logger.Infow("monthly menu updated successfully", "menu_id", m.ID(), "version", m.Version())
	return nil
}

// query locks the header row when ctx carries a transaction.
func (r *MenuRepositoryImpl) query(ctx context.Context, tenantID string) *gorm.DB {
	q := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForTenant(tenantID)).
		Preload("Days", func(tx *gorm.DB) *gorm.DB { return tx.Order("date ASC") })
	if db.InTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func (r *MenuRepositoryImpl) first(q *gorm.DB, logKey string, logVal any) (*menu.MonthlyMenu, error) {
	var model models.MonthlyMenuModel
	if err := q.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get monthly menu", "error", err, logKey, logVal)
		return nil, fmt.Errorf("failed to get monthly menu: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *MenuRepositoryImpl) GetByID(ctx context.Context, tenantID, menuID string) (*menu.MonthlyMenu, error) {
	return r.first(r.query(ctx, tenantID).Where("id = ?", menuID), "menu_id", menuID)
}

func (r *MenuRepositoryImpl) GetByProgramMonth(ctx context.Context, tenantID, programID string, year int, month time.Month) (*menu.MonthlyMenu, error) {
	q := r.query(ctx, tenantID).Where("program_id = ? AND year = ? AND month = ?", programID, year, int(month))
	return r.first(q, "program_id", programID)
}

func (r *MenuRepositoryImpl) ListOverlapping(ctx context.Context, tenantID, programID string, start, end time.Time) ([]*menu.MonthlyMenu, error) {
	from := start.Year()*12 + int(start.Month())
	to := end.Year()*12 + int(end.Month())

	var rows []models.MonthlyMenuModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForTenant(tenantID)).
		Preload("Days", func(tx *gorm.DB) *gorm.DB { return tx.Order("date ASC") }).
		Where("program_id = ? AND (year * 12 + month) BETWEEN ? AND ?", programID, from, to).
		Order("year ASC, month ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list monthly menus", "error", err, "program_id", programID)
		return nil, fmt.Errorf("failed to list monthly menus: %w", err)
	}

	menus := make([]*menu.MonthlyMenu, 0, len(rows))
	for i := range rows {
		m, err := r.mapper.ToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, nil
}
