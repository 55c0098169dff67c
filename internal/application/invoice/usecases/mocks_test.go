package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/invoice"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
	"mealplan/internal/shared/logger"
)

const testTenant = "tenant-1"

type mockProgramRepository struct {
	GetByIDFunc func(ctx context.Context, tenantID, programID string) (*catering.Program, error)
}

func (m *mockProgramRepository) Create(ctx context.Context, program *catering.Program) error {
	return nil
}

func (m *mockProgramRepository) GetByID(ctx context.Context, tenantID, programID string) (*catering.Program, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, tenantID, programID)
	}
	return nil, nil
}

func (m *mockProgramRepository) ListActive(ctx context.Context, tenantID string) ([]*catering.Program, error) {
	return nil, nil
}

func programRepoFor(programs ...*catering.Program) *mockProgramRepository {
	return &mockProgramRepository{
		GetByIDFunc: func(ctx context.Context, tenantID, programID string) (*catering.Program, error) {
			for _, p := range programs {
				if p.ID == programID && p.TenantID == tenantID {
					return p, nil
				}
			}
			return nil, nil
		},
	}
}

type mockMenuRepository struct {
	menus []*menu.MonthlyMenu
}

func (m *mockMenuRepository) Create(ctx context.Context, mm *menu.MonthlyMenu) error { return nil }
func (m *mockMenuRepository) Update(ctx context.Context, mm *menu.MonthlyMenu) error { return nil }

func (m *mockMenuRepository) GetByID(ctx context.Context, tenantID, menuID string) (*menu.MonthlyMenu, error) {
	for _, mm := range m.menus {
		if mm.ID() == menuID && mm.TenantID() == tenantID {
			return mm, nil
		}
	}
	return nil, nil
}

func (m *mockMenuRepository) GetByProgramMonth(ctx context.Context, tenantID, programID string, year int, month time.Month) (*menu.MonthlyMenu, error) {
	return nil, nil
}

func (m *mockMenuRepository) ListOverlapping(ctx context.Context, tenantID, programID string, start, end time.Time) ([]*menu.MonthlyMenu, error) {
	var out []*menu.MonthlyMenu
	for _, mm := range m.menus {
		if mm.TenantID() != tenantID || mm.ProgramID() != programID {
			continue
		}
		if mm.PeriodEnd().Before(start) || mm.PeriodStart().After(end) {
			continue
		}
		out = append(out, mm)
	}
	return out, nil
}

// ledger is the shared state behind the fake invoice repository and
// allocator. The fake transaction runner restores it when fn fails.
type ledger struct {
	mu       sync.Mutex
	invoices []*invoice.Invoice
	seq      map[string]int64
	allocs   int
	updates  int

	failCreate error
}

func newLedger() *ledger {
	return &ledger{seq: make(map[string]int64)}
}

type ledgerSnapshot struct {
	invoices []*invoice.Invoice
	seq      map[string]int64
}

func (l *ledger) snapshot() ledgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	seq := make(map[string]int64, len(l.seq))
	for k, v := range l.seq {
		seq[k] = v
	}
	return ledgerSnapshot{invoices: append([]*invoice.Invoice(nil), l.invoices...), seq: seq}
}

func (l *ledger) restore(s ledgerSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invoices = s.invoices
	l.seq = s.seq
}

func (l *ledger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.invoices)
}

func (l *ledger) Create(ctx context.Context, inv *invoice.Invoice) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failCreate != nil {
		return l.failCreate
	}
	l.invoices = append(l.invoices, inv)
	return nil
}

func (l *ledger) Update(ctx context.Context, inv *invoice.Invoice) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, stored := range l.invoices {
		if stored.ID() == inv.ID() {
			l.invoices[i] = inv
			l.updates++
			return nil
		}
	}
	return errors.NewNotFoundError("invoice not found", inv.ID())
}

func (l *ledger) GetByID(ctx context.Context, tenantID, invoiceID string) (*invoice.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, inv := range l.invoices {
		if inv.ID() == invoiceID && inv.TenantID() == tenantID {
			return inv, nil
		}
	}
	return nil, nil
}

func (l *ledger) ListByProgram(ctx context.Context, tenantID, programID string, offset, limit int) ([]*invoice.Invoice, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var matched []*invoice.Invoice
	for _, inv := range l.invoices {
		if inv.TenantID() == tenantID && inv.ProgramID() == programID {
			matched = append(matched, inv)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], total, nil
}

func (l *ledger) ExistsOverlapping(ctx context.Context, tenantID, programID string, period invoice.Period) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, inv := range l.invoices {
		if inv.TenantID() == tenantID && inv.ProgramID() == programID && inv.Period().Overlaps(period) {
			return true, nil
		}
	}
	return false, nil
}

func (l *ledger) Next(ctx context.Context, program *catering.Program) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allocs++
	l.seq[program.ID]++
	return invoice.FormatNumber(program.InvoicePrefix, l.seq[program.ID]), nil
}

type rollbackRunner struct {
	ledger *ledger
	txs    int
}

func (r *rollbackRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txs++
	snap := r.ledger.snapshot()
	if err := fn(ctx); err != nil {
		r.ledger.restore(snap)
		return err
	}
	return nil
}

func testProgram() *catering.Program {
	return &catering.Program{
		ID:            "prg_bright",
		TenantID:      testTenant,
		Name:          "Bright Cafe",
		AgeGroupID:    4,
		ServiceDays:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		MealTypes:     []cacfp.MealType{cacfp.MealTypeLunch},
		InvoicePrefix: "BC",
		PricePerMeal:  decimal.RequireFromString("3.50"),
		Enrollment:    10,
		StartDate:     biztime.Date(2024, time.January, 1),
		Active:        true,
	}
}

// aprilMenu serves lunch on every weekday of April 2024.
func aprilMenu(t *testing.T, finalized bool) *menu.MonthlyMenu {
	t.Helper()
	m, err := menu.NewMonthlyMenu("mnu_apr", testTenant, "prg_bright", 2024, time.April)
	require.NoError(t, err)

	var days []menu.MenuDay
	for i, date := range biztime.MonthDates(2024, time.April) {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		d := menu.NewMenuDay(date)
		d.Assignments[cacfp.MealTypeLunch] = menu.Assignment{
			MealItemID: fmt.Sprintf("l%02d", i%3+1),
			MealName:   "Lunch",
		}
		days = append(days, d)
	}
	require.NoError(t, m.ReplaceDays(days))
	if finalized {
		m.Finalize()
	}
	return m
}

func nopLogger() logger.Interface {
	return logger.NewNopLogger()
}
