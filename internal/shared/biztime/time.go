// Package biztime provides calendar helpers for service dates.
//
// Service dates are civil dates stored as midnight UTC. The business
// timezone is only consulted to decide what "today" is.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "America/Chicago"

	// DateLayout is the wire format for service dates.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to America/Chicago.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location, initializing the
// default one on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// Clock reports the current business date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

// SystemClock reads the wall clock in the business timezone.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Today() time.Time {
	return DateOf(time.Now().In(Location()))
}

// FixedClock always reports the same date.
type FixedClock time.Time

func (c FixedClock) Today() time.Time { return DateOf(time.Time(c)) }

// Date builds a service date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD service date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a service date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInMonth returns the number of days in the month, handling leap years.
func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// MonthDates lists every date of the month in ascending order.
func MonthDates(year int, month time.Month) []time.Time {
	n := DaysInMonth(year, month)
	dates := make([]time.Time, 0, n)
	for d := 1; d <= n; d++ {
		dates = append(dates, Date(year, month, d))
	}
	return dates
}

// PreviousMonth returns the year and month before the given one.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	p := Date(year, month, 1).AddDate(0, -1, 0)
	return p.Year(), p.Month()
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return DateOf(d).AddDate(0, 0, -offset)
}

// DatesBetween lists the dates from start to end inclusive.
func DatesBetween(start, end time.Time) []time.Time {
	start, end = DateOf(start), DateOf(end)
	if end.Before(start) {
		return nil
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
