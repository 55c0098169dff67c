package invoice

import (
	"time"

	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
)

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: biztime.DateOf(start), End: biztime.DateOf(end)}
	if p.End.Before(p.Start) {
		return Period{}, errors.NewValidationError("period end is before period start",
			biztime.FormatDate(p.Start), biztime.FormatDate(p.End))
	}
	return p, nil
}

func (p Period) Contains(d time.Time) bool {
	d = biztime.DateOf(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) Overlaps(o Period) bool {
	return !p.End.Before(o.Start) && !o.End.Before(p.Start)
}

func (p Period) String() string {
	return biztime.FormatDate(p.Start) + ".." + biztime.FormatDate(p.End)
}
