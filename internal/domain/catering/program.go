package catering

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
)

var invoicePrefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// Holiday is a date on which a program receives no service.
type Holiday struct {
	Date        time.Time
	Description string
}

// DietaryPolicy decides on which dates every meal must be vegan.
type DietaryPolicy struct {
	VeganRequired bool
	VeganDays     []time.Weekday
}

// Program is a client contract.
type Program struct {
	ID                string
	TenantID          string
	Name              string
	AgeGroupID        int
	ServiceDays       []time.Weekday
	MealTypes         []cacfp.MealType
	InvoicePrefix     string
	PricePerMeal      decimal.Decimal
	Enrollment        int
	Dietary           DietaryPolicy
	StartDate         time.Time
	EndDate           *time.Time
	Holidays          []Holiday
	LastInvoiceNumber int
	Active            bool
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, w := range days {
		if w == d {
			return true
		}
	}
	return false
}

// IsHoliday reports whether date is one of the program's holidays.
func (p *Program) IsHoliday(date time.Time) bool {
	day := biztime.DateOf(date)
	for _, h := range p.Holidays {
		if biztime.DateOf(h.Date).Equal(day) {
			return true
		}
	}
	return false
}

// InContract reports whether date lies within the program's start and end dates.
func (p *Program) InContract(date time.Time) bool {
	day := biztime.DateOf(date)
	if !p.StartDate.IsZero() && day.Before(biztime.DateOf(p.StartDate)) {
		return false
	}
	if p.EndDate != nil && day.After(biztime.DateOf(*p.EndDate)) {
		return false
	}
	return true
}

// ServesOn reports whether meals are delivered on date.
func (p *Program) ServesOn(date time.Time) bool {
	return containsWeekday(p.ServiceDays, date.Weekday()) &&
		!p.IsHoliday(date) &&
		p.InContract(date)
}

// RequiresVegan reports whether every meal served on date must be vegan.
func (p *Program) RequiresVegan(date time.Time) bool {
	return p.Dietary.VeganRequired || containsWeekday(p.Dietary.VeganDays, date.Weekday())
}

// ServiceDates lists the month's service dates in ascending order.
func (p *Program) ServiceDates(year int, month time.Month) []time.Time {
	var out []time.Time
	for _, d := range biztime.MonthDates(year, month) {
		if p.ServesOn(d) {
			out = append(out, d)
		}
	}
	return out
}

// OrderedMealTypes returns the required meal types in serving order
// without duplicates.
func (p *Program) OrderedMealTypes() []cacfp.MealType {
	var out []cacfp.MealType
	for _, mt := range cacfp.MealTypes() {
		for _, want := range p.MealTypes {
			if want == mt {
				out = append(out, mt)
				break
			}
		}
	}
	return out
}

func (p *Program) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("program name is required")
	}
	if !invoicePrefixPattern.MatchString(p.InvoicePrefix) {
		return errors.NewValidationError("invoice prefix must be 1-10 uppercase letters or digits", p.InvoicePrefix)
	}
	if p.PricePerMeal.IsNegative() {
		return errors.NewValidationError("price per meal cannot be negative")
	}
	if p.Enrollment < 1 {
		return errors.NewValidationError("enrollment must be at least 1")
	}
	if len(p.ServiceDays) == 0 {
		return errors.NewValidationError("at least one service day is required")
	}
	if len(p.MealTypes) == 0 {
		return errors.NewValidationError("at least one meal type is required")
	}
	for _, mt := range p.MealTypes {
		if !mt.IsValid() {
			return errors.NewValidationError("meal type not recognized", string(mt))
		}
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return errors.NewValidationError("program end date is before its start date")
	}
	return nil
}

// ParseWeekday accepts full English day names in any letter case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return 0, errors.NewValidationError("weekday not recognized", s)
}
