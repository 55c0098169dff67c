package menu

import (
	"sort"

	"mealplan/internal/domain/cacfp"
)

// DefaultLookback is the variety window in service days.
const DefaultLookback = 10

// History is the ordered list of meal items assigned per meal type,
// oldest first.
type History map[cacfp.MealType][]string

// HistoryFromDays builds a history from days in ascending date order.
func HistoryFromDays(days []MenuDay) History {
	h := make(History)
	for _, d := range days {
		for _, mt := range d.MealTypes() {
			h.Append(mt, d.Assignments[mt].MealItemID)
		}
	}
	return h
}

func (h History) Append(mt cacfp.MealType, mealItemID string) {
	h[mt] = append(h[mt], mealItemID)
}

// Tail keeps at most n most recent entries per meal type.
func (h History) Tail(n int) History {
	out := make(History, len(h))
	for mt, ids := range h {
		if len(ids) > n {
			ids = ids[len(ids)-n:]
		}
		out[mt] = append([]string(nil), ids...)
	}
	return out
}

func (h History) Clone() History {
	out := make(History, len(h))
	for mt, ids := range h {
		out[mt] = append([]string(nil), ids...)
	}
	return out
}

// Merge returns h followed by later entries.
func (h History) Merge(later History) History {
	out := h.Clone()
	for mt, ids := range later {
		out[mt] = append(out[mt], ids...)
	}
	return out
}

// Score rates a candidate against the last lookback entries of history.
// A candidate outside the window scores 0. Inside it scores negative, and
// the more recent the last use the lower the score.
func Score(candidateID string, history []string, lookback int) int {
	if lookback <= 0 {
		return 0
	}
	start := len(history) - lookback
	if start < 0 {
		start = 0
	}
	for i := len(history) - 1; i >= start; i-- {
		if history[i] == candidateID {
			distance := len(history) - 1 - i
			return -(lookback - distance)
		}
	}
	return 0
}

// Rank orders candidate IDs by score, highest first, breaking ties by
// ascending ID. In strict mode penalized candidates are dropped.
func Rank(candidateIDs []string, history []string, lookback int, strict bool) []string {
	type scored struct {
		id    string
		score int
	}
	list := make([]scored, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		s := Score(id, history, lookback)
		if strict && s < 0 {
			continue
		}
		list = append(list, scored{id: id, score: s})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].id < list[j].id
	})
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.id
	}
	return out
}
