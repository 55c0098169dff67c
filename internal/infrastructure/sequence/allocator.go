// Package sequence allocates per-program invoice numbers from the durable
// counter stored on the program row.
package sequence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/infrastructure/lock"
	"mealplan/internal/infrastructure/persistence/models"
	"mealplan/internal/shared/config"
	"mealplan/internal/shared/constants"
	"mealplan/internal/shared/db"
	apperrors "mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

const (
	defaultMaxRetries     = 5
	defaultInitialBackoff = 10 * time.Millisecond
	defaultMaxBackoff     = 200 * time.Millisecond
)

// errSequenceMoved marks a lost compare-and-swap; it is the only retried error.
var errSequenceMoved = errors.New("invoice sequence changed concurrently")

// InvoiceNumberAllocator increments last_invoice_number with a conditional
// update. The keyed lock keeps contention off the database; the
// conditional update keeps numbers unique even without it.
type InvoiceNumberAllocator struct {
	db             *gorm.DB
	locker         lock.Locker
	maxRetries     uint
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         logger.Interface
}

var _ invoice.NumberAllocator = (*InvoiceNumberAllocator)(nil)

func NewInvoiceNumberAllocator(db *gorm.DB, locker lock.Locker, cfg config.InvoicingConfig, logger logger.Interface) *InvoiceNumberAllocator {
	a := &InvoiceNumberAllocator{
		db:             db,
		locker:         locker,
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
		logger:         logger,
	}
	if cfg.MaxRetries > 0 {
		a.maxRetries = uint(cfg.MaxRetries)
	}
	if cfg.InitialBackoffMs > 0 {
		a.initialBackoff = time.Duration(cfg.InitialBackoffMs) * time.Millisecond
	}
	if cfg.MaxBackoffMs > 0 {
		a.maxBackoff = time.Duration(cfg.MaxBackoffMs) * time.Millisecond
	}
	return a
}

// Next returns the program's next invoice number. When ctx carries a
// transaction the increment is part of it, so a rollback releases the
// number and no committed number is ever skipped.
func (a *InvoiceNumberAllocator) Next(ctx context.Context, program *catering.Program) (string, error) {
	if program.InvoicePrefix == "" {
		return "", apperrors.NewValidationError("program has no invoice prefix", program.ID)
	}

	release, err := a.locker.Lock(ctx, constants.InvoiceLockKeyPrefix+program.ID)
	if err != nil {
		return "", apperrors.NewConcurrencyConflictError("invoice sequence is busy", program.ID, err.Error())
	}
	defer release()

	seq, err := backoff.Retry(ctx,
		func() (int64, error) { return a.increment(ctx, program) },
		backoff.WithBackOff(a.newBackOff()),
		backoff.WithMaxTries(a.maxRetries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			a.logger.Warnw("invoice sequence conflict, retrying",
				"program_id", program.ID,
				"wait", wait,
				"error", err,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, errSequenceMoved) {
			a.logger.Errorw("invoice sequence retries exhausted", "program_id", program.ID, "retries", a.maxRetries)
			return "", apperrors.NewConcurrencyConflictError("invoice number allocation retries exhausted", program.ID)
		}
		return "", err
	}

	number := invoice.FormatNumber(program.InvoicePrefix, seq)
	a.logger.Debugw("invoice number allocated", "program_id", program.ID, "invoice_number", number)
	return number, nil
}

func (a *InvoiceNumberAllocator) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.initialBackoff
	b.MaxInterval = a.maxBackoff
	b.Reset()
	return b
}

// increment performs one read and compare-and-swap.
func (a *InvoiceNumberAllocator) increment(ctx context.Context, program *catering.Program) (int64, error) {
	tx := db.GetTxFromContext(ctx, a.db)

	read := tx.Model(&models.ProgramModel{}).Select("last_invoice_number")
	if db.InTransaction(ctx) {
		// current read; a snapshot read inside a transaction would never see the winner's commit
		read = read.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var current int64
	err := read.Where("id = ? AND tenant_id = ?", program.ID, program.TenantID).Row().Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, backoff.Permanent(apperrors.NewNotFoundError("program not found", program.ID))
		}
		return 0, backoff.Permanent(fmt.Errorf("failed to read invoice sequence: %w", err))
	}

	result := tx.Model(&models.ProgramModel{}).
		Where("id = ? AND last_invoice_number = ?", program.ID, current).
		Update("last_invoice_number", current+1)
	if result.Error != nil {
		return 0, backoff.Permanent(fmt.Errorf("failed to advance invoice sequence: %w", result.Error))
	}
	if result.RowsAffected == 0 {
		return 0, errSequenceMoved
	}
	return current + 1, nil
}
