package invoice

import (
	"strings"
	"time"

	"mealplan/internal/domain/menu"
	"mealplan/internal/shared/biztime"
	"mealplan/internal/shared/errors"
)

// GroupingPolicy decides how a menu's days are split into invoices.
type GroupingPolicy string

const (
	GroupByMonth GroupingPolicy = "month"
	GroupByWeek  GroupingPolicy = "week"
	GroupByDay   GroupingPolicy = "day"
)

func ParseGroupingPolicy(s string) (GroupingPolicy, error) {
	p := GroupingPolicy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return GroupByMonth, nil
	case GroupByMonth, GroupByWeek, GroupByDay:
		return p, nil
	}
	return "", errors.NewValidationError("grouping policy not recognized", s)
}

// Group is one invoice's worth of days.
type Group struct {
	Period Period
	Days   []menu.MenuDay
}

// GroupDays splits the menu's billable days. Week groups start on Monday
// and are clipped to the menu's month so neighbouring months never share
// a period. Groups without any assigned meal are dropped.
func GroupDays(m *menu.MonthlyMenu, policy GroupingPolicy) []Group {
	monthStart, monthEnd := m.PeriodStart(), m.PeriodEnd()

	var groups []Group
	index := make(map[time.Time]int)
	for _, d := range m.Days() {
		if d.MealSlots() == 0 {
			continue
		}
		var p Period
		switch policy {
		case GroupByDay:
			p = Period{Start: d.Date, End: d.Date}
		case GroupByWeek:
			start := biztime.WeekStart(d.Date)
			end := start.AddDate(0, 0, 6)
			if start.Before(monthStart) {
				start = monthStart
			}
			if end.After(monthEnd) {
				end = monthEnd
			}
			p = Period{Start: start, End: end}
		default:
			p = Period{Start: monthStart, End: monthEnd}
		}

		i, ok := index[p.Start]
		if !ok {
			i = len(groups)
			index[p.Start] = i
			groups = append(groups, Group{Period: p})
		}
		groups[i].Days = append(groups[i].Days, d)
	}
	return groups
}
