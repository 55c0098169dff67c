package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []string
	}{
		{"nil stays nil", nil, nil},
		{"empty stays empty", []int{}, []string{}},
		{"keeps order", []int{3, 1, 2}, []string{"3", "1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapSlice(tt.input, strconv.Itoa))
		})
	}
}

func TestMapSliceWithError(t *testing.T) {
	parse := func(s string) (int, error) { return strconv.Atoi(s) }

	t.Run("all succeed", func(t *testing.T) {
		got, err := MapSliceWithError([]string{"1", "22"}, parse)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 22}, got)
	})

	t.Run("nil input", func(t *testing.T) {
		got, err := MapSliceWithError(nil, parse)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("stops at first error", func(t *testing.T) {
		calls := 0
		boom := errors.New("bad row")
		got, err := MapSliceWithError([]string{"1", "x", "3"}, func(s string) (int, error) {
			calls++
			if s == "x" {
				return 0, boom
			}
			return strconv.Atoi(s)
		})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
		assert.Equal(t, 2, calls)
	})
}
