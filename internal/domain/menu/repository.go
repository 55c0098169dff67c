package menu

import (
	"context"
	"time"
)

// Repository persists monthly menus with their days. Getters return
// (nil, nil) when no menu matches within the tenant.
type Repository interface {
	Create(ctx context.Context, m *MonthlyMenu) error
	// Update replaces status and days. It fails with a concurrency
	// conflict when the stored version differs from m.Version().
	Update(ctx context.Context, m *MonthlyMenu) error
	GetByID(ctx context.Context, tenantID, menuID string) (*MonthlyMenu, error)
	GetByProgramMonth(ctx context.Context, tenantID, programID string, year int, month time.Month) (*MonthlyMenu, error)
	// ListOverlapping returns the program's menus whose month intersects [start, end].
	ListOverlapping(ctx context.Context, tenantID, programID string, start, end time.Time) ([]*MonthlyMenu, error)
}
