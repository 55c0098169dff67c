package invoice

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/constants"
	"mealplan/internal/shared/errors"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
	StatusSent      Status = "sent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusFinalized, StatusSent:
		return true
	}
	return false
}

// LineItem bills one service date.
type LineItem struct {
	ServiceDate time.Time
	MealsByType map[cacfp.MealType]int
	MealCount   int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is a billing record for one program and period. Its number is
// assigned before construction and never changes.
type Invoice struct {
	id            string
	tenantID      string
	programID     string
	monthlyMenuID string
	number        string
	period        Period
	lines         []LineItem
	total         decimal.Decimal
	currency      string
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

// FormatNumber renders a sequence value as PREFIX-0001.
func FormatNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, constants.InvoiceSequenceWidth, seq)
}

// PriceDays builds one line per day that has at least one assigned meal.
// Days must fall inside period and appear at most once.
func PriceDays(program *catering.Program, period Period, days []menu.MenuDay) ([]LineItem, decimal.Decimal, error) {
	seen := make(map[time.Time]bool, len(days))
	var lines []LineItem
	total := decimal.Zero

	for _, d := range days {
		date := biztime.DateOf(d.Date)
		if !period.Contains(date) {
			return nil, decimal.Zero, errors.NewValidationError("menu day outside billing period",
				biztime.FormatDate(date), period.String())
		}
		if seen[date] {
			return nil, decimal.Zero, errors.NewValidationError("menu day supplied twice", biztime.FormatDate(date))
		}
		seen[date] = true

		if d.MealSlots() == 0 {
			continue
		}
		byType := make(map[cacfp.MealType]int, len(d.Assignments))
		count := 0
		for mt := range d.Assignments {
			byType[mt] = program.Enrollment
			count += program.Enrollment
		}
		amount := program.PricePerMeal.Mul(decimal.NewFromInt(int64(count))).Round(2)
		lines = append(lines, LineItem{
			ServiceDate: date,
			MealsByType: byType,
			MealCount:   count,
			UnitPrice:   program.PricePerMeal,
			Amount:      amount,
		})
		total = total.Add(amount)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ServiceDate.Before(lines[j].ServiceDate) })
	return lines, total, nil
}

// CollectDays gathers the days of menus that fall inside period. Every
// menu must belong to program.
func CollectDays(program *catering.Program, period Period, menus []*menu.MonthlyMenu) ([]menu.MenuDay, error) {
	var days []menu.MenuDay
	for _, m := range menus {
		if m.ProgramID() != program.ID || m.TenantID() != program.TenantID {
			return nil, errors.NewValidationError("menu belongs to another program", m.ID())
		}
		for _, d := range m.Days() {
			if period.Contains(d.Date) {
				days = append(days, d)
			}
		}
	}
	return days, nil
}

// NewInvoice prices days and returns a draft invoice. monthlyMenuID may be
// empty when the period spans several menus.
func NewInvoice(id string, program *catering.Program, number string, period Period,
	monthlyMenuID string, days []menu.MenuDay) (*Invoice, error) {

	if strings.TrimSpace(number) == "" {
		return nil, errors.NewValidationError("invoice number is required")
	}
	lines, total, err := PriceDays(program, period, days)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.NewValidationError("no billable meals in period", period.String())
	}

	now := time.Now().UTC()
	return &Invoice{
		id:            id,
		tenantID:      program.TenantID,
		programID:     program.ID,
		monthlyMenuID: monthlyMenuID,
		number:        number,
		period:        period,
		lines:         lines,
		total:         total,
		currency:      constants.DefaultCurrency,
		status:        StatusDraft,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructInvoice rebuilds an invoice loaded from storage.
func ReconstructInvoice(id, tenantID, programID, monthlyMenuID, number string, period Period,
	lines []LineItem, total decimal.Decimal, currency string, status Status,
	createdAt, updatedAt time.Time) (*Invoice, error) {

	if id == "" {
		return nil, fmt.Errorf("invoice ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", status)
	}
	return &Invoice{
		id:            id,
		tenantID:      tenantID,
		programID:     programID,
		monthlyMenuID: monthlyMenuID,
		number:        number,
		period:        period,
		lines:         lines,
		total:         total,
		currency:      currency,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (i *Invoice) ID() string             { return i.id }
func (i *Invoice) TenantID() string       { return i.tenantID }
func (i *Invoice) ProgramID() string      { return i.programID }
func (i *Invoice) MonthlyMenuID() string  { return i.monthlyMenuID }
func (i *Invoice) Number() string         { return i.number }
func (i *Invoice) Period() Period         { return i.period }
func (i *Invoice) Total() decimal.Decimal { return i.total }
func (i *Invoice) Currency() string       { return i.currency }
func (i *Invoice) Status() Status         { return i.status }
func (i *Invoice) CreatedAt() time.Time   { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time   { return i.updatedAt }
func (i *Invoice) SetID(id string)        { i.id = id }
func (i *Invoice) LineCount() int         { return len(i.lines) }
func (i *Invoice) PeriodStart() time.Time { return i.period.Start }
func (i *Invoice) PeriodEnd() time.Time   { return i.period.End }

func (i *Invoice) Lines() []LineItem {
	out := make([]LineItem, len(i.lines))
	copy(out, i.lines)
	return out
}

// MealCount is the number of meals billed across all lines.
func (i *Invoice) MealCount() int {
	n := 0
	for _, l := range i.lines {
		n += l.MealCount
	}
	return n
}

func (i *Invoice) Finalize() error {
	if i.status != StatusDraft {
		return errors.NewInvalidStateError("only draft invoices can be finalized", string(i.status))
	}
	i.status = StatusFinalized
	i.updatedAt = time.Now().UTC()
	return nil
}

func (i *Invoice) MarkSent() error {
	if i.status != StatusFinalized {
		return errors.NewInvalidStateError("only finalized invoices can be sent", string(i.status))
	}
	i.status = StatusSent
	i.updatedAt = time.Now().UTC()
	return nil
}
