package cacfp

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mealplan/internal/shared/errors"
)

// Unit is the measure a portion is expressed in.
type Unit string

const (
	UnitFluidOunce      Unit = "fl_oz"
	UnitOunceEquivalent Unit = "oz_eq"
	UnitCup             Unit = "cup"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitFluidOunce, UnitOunceEquivalent, UnitCup:
		return true
	}
	return false
}

// Quantity is an amount in a unit. Quantities in different units are
// never compared or summed.
type Quantity struct {
	Amount decimal.Decimal
	Unit   Unit
}

func NewQuantity(amount decimal.Decimal, unit Unit) Quantity {
	return Quantity{Amount: amount, Unit: unit}
}

// Zero returns an empty quantity in unit u.
func Zero(u Unit) Quantity {
	return Quantity{Amount: decimal.Zero, Unit: u}
}

// Add sums two quantities of the same unit.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.Unit != other.Unit {
		return Quantity{}, errors.NewValidationError(
			"unit mismatch",
			fmt.Sprintf("cannot combine %s with %s", q.Unit, other.Unit),
		)
	}
	return Quantity{Amount: q.Amount.Add(other.Amount), Unit: q.Unit}, nil
}

// Mul scales the amount, keeping the unit.
func (q Quantity) Mul(factor decimal.Decimal) Quantity {
	return Quantity{Amount: q.Amount.Mul(factor), Unit: q.Unit}
}

func (q Quantity) Equal(other Quantity) bool {
	return q.Unit == other.Unit && q.Amount.Equal(other.Amount)
}

func (q Quantity) String() string {
	return q.Amount.String() + string(q.Unit)
}
