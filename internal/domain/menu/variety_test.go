package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mealplan/internal/domain/cacfp"
)

func TestScore(t *testing.T) {
	history := []string{"a", "b", "c", "d"}

	tests := []struct {
		name      string
		candidate string
		lookback  int
		want      int
	}{
		{"never served", "z", 3, 0},
		{"most recent", "d", 3, -3},
		{"oldest inside window", "b", 3, -1},
		{"outside window", "a", 3, 0},
		{"zero lookback", "d", 0, 0},
		{"window longer than history", "a", 10, -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.candidate, history, tt.lookback))
		})
	}
}

func TestScore_UsesMostRecentOccurrence(t *testing.T) {
	assert.Equal(t, -5, Score("a", []string{"a", "b", "a"}, 5))
}

func TestRank(t *testing.T) {
	history := []string{"m3", "m1"}

	assert.Equal(t, []string{"m2", "m4", "m3", "m1"}, Rank([]string{"m4", "m3", "m2", "m1"}, history, 5, false))
	assert.Equal(t, []string{"m2", "m4"}, Rank([]string{"m4", "m3", "m2", "m1"}, history, 5, true))
	assert.Empty(t, Rank([]string{"m1"}, history, 5, true))
}

func TestRank_TieBreakIsStable(t *testing.T) {
	ids := []string{"c", "a", "b"}
	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"a", "b", "c"}, Rank(ids, nil, 10, false))
	}
}

func TestHistory(t *testing.T) {
	days := []MenuDay{
		{Assignments: map[cacfp.MealType]Assignment{cacfp.MealTypeLunch: {MealItemID: "l1"}, cacfp.MealTypeBreakfast: {MealItemID: "b1"}}},
		{Assignments: map[cacfp.MealType]Assignment{cacfp.MealTypeLunch: {MealItemID: "l2"}}},
		{Assignments: map[cacfp.MealType]Assignment{cacfp.MealTypeLunch: {MealItemID: "l3"}}},
	}

	h := HistoryFromDays(days)
	assert.Equal(t, []string{"l1", "l2", "l3"}, h[cacfp.MealTypeLunch])
	assert.Equal(t, []string{"b1"}, h[cacfp.MealTypeBreakfast])

	tail := h.Tail(2)
	assert.Equal(t, []string{"l2", "l3"}, tail[cacfp.MealTypeLunch])

	merged := tail.Merge(History{cacfp.MealTypeLunch: {"l4"}})
	assert.Equal(t, []string{"l2", "l3", "l4"}, merged[cacfp.MealTypeLunch])
	assert.Equal(t, []string{"l2", "l3"}, tail[cacfp.MealTypeLunch])
}
