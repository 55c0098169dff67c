package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RoundTrip(t *testing.T) {
	generators := map[string]func() string{
		PrefixMenu:          NewMenuID,
		PrefixInvoice:       NewInvoiceID,
		PrefixProgram:       NewProgramID,
		PrefixMealItem:      NewMealItemID,
		PrefixFoodComponent: NewFoodComponentID,
	}

	for prefix, gen := range generators {
		t.Run(prefix, func(t *testing.T) {
			v := gen()
			assert.True(t, strings.HasPrefix(v, prefix+"_"))
			assert.NoError(t, Validate(v, prefix))

			got, _, err := Parse(v)
			require.NoError(t, err)
			assert.Equal(t, prefix, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{"", "nounderscore", "_abc", "mnu_not-a-uuid"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, _, err := Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestValidate_WrongPrefix(t *testing.T) {
	err := Validate(NewMenuID(), PrefixInvoice)
	assert.ErrorContains(t, err, "expected inv")
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		v := NewInvoiceID()
		_, dup := seen[v]
		require.False(t, dup)
		seen[v] = struct{}{}
	}
}
