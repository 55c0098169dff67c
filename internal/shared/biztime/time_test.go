package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestMonthDates(t *testing.T) {
	dates := MonthDates(2024, time.February)
	require.Len(t, dates, 29)
	assert.Equal(t, Date(2024, time.February, 1), dates[0])
	assert.Equal(t, Date(2024, time.February, 29), dates[28])
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2024, time.January)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = PreviousMonth(2024, time.March)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
}

func TestWeekStart(t *testing.T) {
	// 2024-09-04 is a Wednesday.
	assert.Equal(t, Date(2024, time.September, 2), WeekStart(Date(2024, time.September, 4)))
	assert.Equal(t, Date(2024, time.September, 2), WeekStart(Date(2024, time.September, 2)))
	// Sunday belongs to the week that started the previous Monday.
	assert.Equal(t, Date(2024, time.September, 2), WeekStart(Date(2024, time.September, 8)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-09-04")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, time.September, 4), d)
	assert.Equal(t, "2024-09-04", FormatDate(d))

	_, err = ParseDate("09/04/2024")
	assert.Error(t, err)
}

func TestDatesBetween(t *testing.T) {
	got := DatesBetween(Date(2024, time.August, 30), Date(2024, time.September, 2))
	require.Len(t, got, 4)
	assert.Equal(t, Date(2024, time.September, 2), got[3])

	assert.Nil(t, DatesBetween(Date(2024, time.September, 2), Date(2024, time.September, 1)))
}

func TestFixedClock(t *testing.T) {
	c := FixedClock(time.Date(2024, time.May, 3, 17, 45, 0, 0, time.UTC))
	assert.Equal(t, Date(2024, time.May, 3), c.Today())
}
