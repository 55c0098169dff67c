package invoice

import (
	"context"

	"mealplan/internal/domain/catering"
)

// Repository persists invoices. GetByID returns nil, nil when the invoice
// does not exist for the tenant.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	// Update persists a status change. Numbers, periods and lines are immutable.
	Update(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, tenantID, invoiceID string) (*Invoice, error)
	ListByProgram(ctx context.Context, tenantID, programID string, offset, limit int) ([]*Invoice, int64, error)
	ExistsOverlapping(ctx context.Context, tenantID, programID string, period Period) (bool, error)
}

// NumberAllocator hands out per-program invoice numbers. When ctx carries
// a transaction the increment commits or rolls back with it.
type NumberAllocator interface {
	Next(ctx context.Context, program *catering.Program) (string, error)
}
