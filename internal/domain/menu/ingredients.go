package menu

import (
	"sort"
	"time"

	"mealplan/internal/domain/cacfp"
	"mealplan/internal/domain/catering"
	"mealplan/internal/shared/biztime"
)

// WeekIngredients lists the distinct food names served in one
// Monday-based week.
type WeekIngredients struct {
	WeekStart   time.Time
	Dates       []time.Time
	Ingredients []string
	ByMealType  map[cacfp.MealType][]string
}

// WeeklyIngredients rolls the menu's assigned meals up by week. Meals
// missing from the lookup are skipped.
func WeeklyIngredients(m *MonthlyMenu, meals map[string]*catering.MealItem) []WeekIngredients {
	type acc struct {
		week   WeekIngredients
		all    map[string]struct{}
		byType map[cacfp.MealType]map[string]struct{}
	}
	var order []time.Time
	weeks := make(map[time.Time]*acc)

	for _, d := range m.Days() {
		ws := biztime.WeekStart(d.Date)
		a := weeks[ws]
		if a == nil {
			a = &acc{
				week:   WeekIngredients{WeekStart: ws, ByMealType: make(map[cacfp.MealType][]string)},
				all:    make(map[string]struct{}),
				byType: make(map[cacfp.MealType]map[string]struct{}),
			}
			weeks[ws] = a
			order = append(order, ws)
		}
		a.week.Dates = append(a.week.Dates, d.Date)

		for _, mt := range d.MealTypes() {
			asg := d.Assignments[mt]
			item := meals[asg.MealItemID]
			if item == nil {
				continue
			}
			if a.byType[mt] == nil {
				a.byType[mt] = make(map[string]struct{})
			}
			for _, name := range item.Ingredients(asg.UsedVeganAlternative) {
				a.all[name] = struct{}{}
				a.byType[mt][name] = struct{}{}
			}
		}
	}

	out := make([]WeekIngredients, 0, len(order))
	for _, ws := range order {
		a := weeks[ws]
		a.week.Ingredients = sortedKeys(a.all)
		for mt, set := range a.byType {
			a.week.ByMealType[mt] = sortedKeys(set)
		}
		out = append(out, a.week)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
