// Package menu plans monthly menus: the MonthlyMenu aggregate, the variety
// tracker and the generator that fills service days with compliant meals.
package menu

import (
	"fmt"
	"sort"
	"time"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusFinalized
}

// Assignment is the meal served for one meal type on one day.
type Assignment struct {
	MealItemID           string
	MealName             string
	UsedVeganAlternative bool
}

// MenuDay is one service date. Meal types that could not be filled are
// absent from Assignments.
type MenuDay struct {
	Date        time.Time
	Assignments map[cacfp.MealType]Assignment
}

func NewMenuDay(date time.Time) MenuDay {
	return MenuDay{Date: biztime.DateOf(date), Assignments: make(map[cacfp.MealType]Assignment)}
}

// MealSlots is the number of assigned meal types.
func (d MenuDay) MealSlots() int {
	return len(d.Assignments)
}

// MealTypes returns the assigned meal types in serving order.
func (d MenuDay) MealTypes() []cacfp.MealType {
	out := make([]cacfp.MealType, 0, len(d.Assignments))
	for mt := range d.Assignments {
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func (d MenuDay) clone() MenuDay {
	c := MenuDay{Date: d.Date, Assignments: make(map[cacfp.MealType]Assignment, len(d.Assignments))}
	for k, v := range d.Assignments {
		c.Assignments[k] = v
	}
	return c
}

// MonthlyMenu is a program's plan for one month.
type MonthlyMenu struct {
	id          string
	tenantID    string
	programID   string
	year        int
	month       time.Month
	status      Status
	days        []MenuDay
	version     int
	finalizedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewMonthlyMenu creates an empty draft menu.
func NewMonthlyMenu(id, tenantID, programID string, year int, month time.Month) (*MonthlyMenu, error) {
	if err := ValidateMonth(year, month); err != nil {
		return nil, err
	}
	if programID == "" {
		return nil, errors.NewValidationError("program ID is required")
	}
	now := time.Now().UTC()
	return &MonthlyMenu{
		id:        id,
		tenantID:  tenantID,
		programID: programID,
		year:      year,
		month:     month,
		status:    StatusDraft,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructMonthlyMenu rebuilds a menu loaded from storage.
func ReconstructMonthlyMenu(id, tenantID, programID string, year int, month time.Month,
	status Status, days []MenuDay, version int, finalizedAt *time.Time,
	createdAt, updatedAt time.Time) (*MonthlyMenu, error) {

	if id == "" {
		return nil, fmt.Errorf("monthly menu ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid monthly menu status: %s", status)
	}
	m := &MonthlyMenu{
		id:          id,
		tenantID:    tenantID,
		programID:   programID,
		year:        year,
		month:       month,
		status:      status,
		version:     version,
		finalizedAt: finalizedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
	if err := m.setDays(days); err != nil {
		return nil, err
	}
	return m, nil
}

// ValidateMonth rejects months outside 1..12 and non-positive years.
func ValidateMonth(year int, month time.Month) error {
	if year < 1 {
		return errors.NewValidationError("year must be positive", fmt.Sprintf("year=%d", year))
	}
	if month < time.January || month > time.December {
		return errors.NewValidationError("month must be between 1 and 12", fmt.Sprintf("month=%d", month))
	}
	return nil
}

func (m *MonthlyMenu) ID() string              { return m.id }
func (m *MonthlyMenu) TenantID() string        { return m.tenantID }
func (m *MonthlyMenu) ProgramID() string       { return m.programID }
func (m *MonthlyMenu) Year() int               { return m.year }
func (m *MonthlyMenu) Month() time.Month       { return m.month }
func (m *MonthlyMenu) Status() Status          { return m.status }
func (m *MonthlyMenu) Version() int            { return m.version }
func (m *MonthlyMenu) FinalizedAt() *time.Time { return m.finalizedAt }
func (m *MonthlyMenu) CreatedAt() time.Time    { return m.createdAt }
func (m *MonthlyMenu) UpdatedAt() time.Time    { return m.updatedAt }

func (m *MonthlyMenu) IsFinalized() bool {
	return m.status == StatusFinalized
}

// PeriodStart is the first day of the menu's month.
func (m *MonthlyMenu) PeriodStart() time.Time {
	return biztime.Date(m.year, m.month, 1)
}

// PeriodEnd is the last day of the menu's month.
func (m *MonthlyMenu) PeriodEnd() time.Time {
	return biztime.Date(m.year, m.month, biztime.DaysInMonth(m.year, m.month))
}

// Days returns a copy of the menu days in ascending date order.
func (m *MonthlyMenu) Days() []MenuDay {
	out := make([]MenuDay, len(m.days))
	for i, d := range m.days {
		out[i] = d.clone()
	}
	return out
}

// Day looks up a single date.
func (m *MonthlyMenu) Day(date time.Time) (MenuDay, bool) {
	i := m.indexOf(date)
	if i < 0 {
		return MenuDay{}, false
	}
	return m.days[i].clone(), true
}

func (m *MonthlyMenu) indexOf(date time.Time) int {
	day := biztime.DateOf(date)
	i := sort.Search(len(m.days), func(i int) bool { return !m.days[i].Date.Before(day) })
	if i < len(m.days) && m.days[i].Date.Equal(day) {
		return i
	}
	return -1
}

// Contains reports whether date falls in the menu's month.
func (m *MonthlyMenu) Contains(date time.Time) bool {
	return date.Year() == m.year && date.Month() == m.month
}

// ReplaceDays swaps every day of a draft menu.
func (m *MonthlyMenu) ReplaceDays(days []MenuDay) error {
	if m.IsFinalized() {
		return errors.NewInvalidStateError("monthly menu is finalized", m.id)
	}
	if err := m.setDays(days); err != nil {
		return err
	}
	m.touch()
	return nil
}

// ReplaceDay swaps a single existing day of a draft menu.
func (m *MonthlyMenu) ReplaceDay(day MenuDay) error {
	if m.IsFinalized() {
		return errors.NewInvalidStateError("monthly menu is finalized", m.id)
	}
	i := m.indexOf(day.Date)
	if i < 0 {
		return errors.NewInvalidStateError("date is not a service day of this menu", biztime.FormatDate(day.Date))
	}
	m.days[i] = day.clone()
	m.touch()
	return nil
}

// Finalize locks the menu. Finalizing twice is a no-op that reports false.
func (m *MonthlyMenu) Finalize() bool {
	if m.IsFinalized() {
		return false
	}
	now := time.Now().UTC()
	m.status = StatusFinalized
	m.finalizedAt = &now
	m.touch()
	return true
}

func (m *MonthlyMenu) SetID(id string) {
	m.id = id
}

// IncrementVersion is called by the repository after a successful update.
func (m *MonthlyMenu) IncrementVersion() {
	m.version++
}

func (m *MonthlyMenu) touch() {
	m.updatedAt = time.Now().UTC()
}

func (m *MonthlyMenu) setDays(days []MenuDay) error {
	sorted := make([]MenuDay, len(days))
	for i, d := range days {
		c := d.clone()
		c.Date = biztime.DateOf(c.Date)
		if !m.Contains(c.Date) {
			return errors.NewValidationError("date outside menu month", biztime.FormatDate(c.Date))
		}
		for mt := range c.Assignments {
			if !mt.IsValid() {
				return errors.NewValidationError("meal type not recognized", string(mt))
			}
		}
		sorted[i] = c
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date.Equal(sorted[i-1].Date) {
			return errors.NewValidationError("duplicate menu date", biztime.FormatDate(sorted[i].Date))
		}
	}
	m.days = sorted
	return nil
}

// MealCount sums assigned slots across all days.
func (m *MonthlyMenu) MealCount() int {
	n := 0
	for _, d := range m.days {
		n += d.MealSlots()
	}
	return n
}
