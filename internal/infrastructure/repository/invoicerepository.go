package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealplan/internal/domain/invoice"
	"mealplan/internal/infrastructure/persistence/mappers"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/db"
	apperrors "mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InvoiceMapper
	logger logger.Interface
}

func NewInvoiceRepository(db *gorm.DB, logger logger.Interface) invoice.Repository {
	return &InvoiceRepositoryImpl{db: db, mapper: mappers.NewInvoiceMapper(), logger: logger}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, inv *invoice.Invoice) error {
	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to convert invoice to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("invoice number already exists", inv.Number())
		}
		r.logger.Errorw("failed to create invoice", "error", err, "invoice_number", inv.Number())
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	r.logger.Infow("invoice created successfully",
		"invoice_id", inv.ID(),
		"invoice_number", inv.Number(),
		"program_id", inv.ProgramID(),
	)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, inv *invoice.Invoice) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Scopes(db.ForTenant(inv.TenantID())).
		Where("id = ?", inv.ID()).
		Updates(map[string]any{
			"status":     string(inv.Status()),
			"updated_at": inv.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update invoice", "error", result.Error, "invoice_id", inv.ID())
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("invoice not found", inv.ID())
	}

	r.logger.Infow("invoice updated successfully", "invoice_id", inv.ID(), "status", inv.Status())
	return nil
}

// GetByID locks the row when ctx carries a transaction.
func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, tenantID, invoiceID string) (*invoice.Invoice, error) {
	q := db.GetTxFromContext(ctx, r.db).Scopes(db.ForTenant(tenantID))
	if db.InTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.InvoiceModel
	err := q.Where("id = ?", invoiceID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get invoice by ID", "error", err, "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) ListByProgram(ctx context.Context, tenantID, programID string, offset, limit int) ([]*invoice.Invoice, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Scopes(db.ForTenant(tenantID)).
		Where("program_id = ?", programID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count invoices", "error", err, "program_id", programID)
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var rows []models.InvoiceModel
	if err := q.Order("period_start ASC, invoice_number ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list invoices", "error", err, "program_id", programID)
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := r.mapper.ToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, nil
}

func (r *InvoiceRepositoryImpl) ExistsOverlapping(ctx context.Context, tenantID, programID string, period invoice.Period) (bool, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Scopes(db.ForTenant(tenantID)).
		Where("program_id = ? AND period_start <= ? AND period_end >= ?", programID, period.End, period.Start)
	// current read, not the transaction snapshot
	if db.InTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var count int64
	err := q.Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check overlapping invoices", "error", err, "program_id", programID)
		return false, fmt.Errorf("failed to check overlapping invoices: %w", err)
	}
	return count > 0, nil
}
