package domain

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is an immutable non-negative monetary amount, rounded to two
// decimal places at construction. Rounding is half away from zero, so
// 19.995 becomes 20.00.
type Money struct {
	value decimal.Decimal
}

// NewMoney validates and rounds the given amount.
func NewMoney(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, NewValidationError("price cannot be negative")
	}
	return Money{value: value.Round(2)}, nil
}

// NewMoneyFromFloat is a convenience constructor for request payloads.
func NewMoneyFromFloat(value float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(value))
}

// ApplyDiscount returns a new amount reduced by the given percentage.
// The percentage must be within [0, 100].
func (m Money) ApplyDiscount(percentage decimal.Decimal) (Money, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return Money{}, NewValidationError("discount must be between 0 and 100")
	}
	factor := decimal.NewFromInt(1).Sub(percentage.Div(hundred))
	return NewMoney(m.value.Mul(factor))
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Float64 returns the amount as a float for JSON responses.
func (m Money) Float64() float64 {
	f, _ := m.value.Float64()
	return f
}

// Equal compares by numeric value only.
func (m Money) Equal(other Money) bool { return m.value.Equal(other.value) }

// LessThan compares by numeric value only.
func (m Money) LessThan(other Money) bool { return m.value.LessThan(other.value) }

func (m Money) String() string { return m.value.StringFixed(2) }
