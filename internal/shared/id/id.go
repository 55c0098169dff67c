// Package id generates Stripe-style prefixed identifiers ("mnu_3f9c...").
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Prefixes for persisted entity types.
const (
	PrefixFoodComponent = "fc"
	PrefixMealItem      = "meal"
	PrefixProgram       = "prg"
	PrefixMenu          = "mnu"
	PrefixInvoice       = "inv"
)

// New returns prefix + "_" + a random UUIDv4 with the dashes removed.
func New(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw
}

// Parse splits a prefixed ID. The remainder must be a valid UUID in hex form.
func Parse(prefixedID string) (prefix string, u uuid.UUID, err error) {
	prefix, rest, ok := strings.Cut(prefixedID, "_")
	if !ok || prefix == "" {
		return "", uuid.Nil, fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	u, err = uuid.Parse(rest)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("invalid prefixed ID %q: %w", prefixedID, err)
	}
	return prefix, u, nil
}

// Validate checks the ID carries the expected prefix.
func Validate(prefixedID, expectedPrefix string) error {
	prefix, _, err := Parse(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

func NewMenuID() string          { return New(PrefixMenu) }
func NewInvoiceID() string       { return New(PrefixInvoice) }
func NewProgramID() string       { return New(PrefixProgram) }
func NewMealItemID() string      { return New(PrefixMealItem) }
func NewFoodComponentID() string { return New(PrefixFoodComponent) }
