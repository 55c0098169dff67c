package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealplan/internal/domain/catering"
	"mealplan/internal/infrastructure/persistence/mappers"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/db"
	apperrors "mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type ProgramRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CateringMapper
	logger logger.Interface
}

func NewProgramRepository(db *gorm.DB, logger logger.Interface) catering.ProgramRepository {
	return &ProgramRepositoryImpl{
		db:     db,
		mapper: mappers.NewCateringMapper(),
		logger: logger,
	}
}

func (r *ProgramRepositoryImpl) Create(ctx context.Context, program *catering.Program) error {
	if err := program.Validate(); err != nil {
		return err
	}
	model, err := r.mapper.ProgramToModel(program)
	if err != nil {
		return fmt.Errorf("failed to convert program to model: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("invoice prefix already used by another program", program.InvoicePrefix)
		}
		r.logger.Errorw("failed to create program", "error", err, "program_id", program.ID)
		return fmt.Errorf("failed to create program: %w", err)
	}

	r.logger.Infow("program created successfully", "program_id", program.ID, "tenant_id", program.TenantID)
	return nil
}

// GetByID locks the program row when ctx carries a transaction, so
// invoicing and menu writes for one program run one at a time.
func (r *ProgramRepositoryImpl) GetByID(ctx context.Context, tenantID, programID string) (*catering.Program, error) {
	q := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForTenant(tenantID)).
		Preload("Holidays")
	if db.InTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.ProgramModel
	err := q.Where("id = ?", programID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get program by ID", "error", err, "program_id", programID)
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return r.mapper.ProgramToEntity(&model)
}

func (r *ProgramRepositoryImpl) ListActive(ctx context.Context, tenantID string) ([]*catering.Program, error) {
	var rows []models.ProgramModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ForTenant(tenantID)).
		Preload("Holidays").
		Where("active = ?", true).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list active programs", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list active programs: %w", err)
	}

	programs := make([]*catering.Program, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.ProgramToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}
