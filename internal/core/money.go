// Package core holds the domain model: entities, money and calendar-date
// values, derived read models, and input validation.
package core

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in integer cents. Keeping cents in storage lets SQL
// aggregation stay exact; decimal is the bridge for fractional arithmetic
// such as rate-times-hours products and averages.
type Money struct {
	Cents int64
}

// MoneyFromDecimal converts a decimal amount (in currency units) to cents
// with half-up rounding on the third decimal place.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Shift(2).Round(0).IntPart()}
}

// ParseMoney parses a decimal string like "12.34" into Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return MoneyFromDecimal(d), nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Mul multiplies the amount by a decimal factor, rounding to cents.
func (m Money) Mul(factor decimal.Decimal) Money {
	return MoneyFromDecimal(m.Decimal().Mul(factor))
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Div divides the amount by n without losing sub-cent precision; used for
// derived averages, which are statistics rather than stored amounts.
func (m Money) Div(n int64) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return m.Decimal().Div(decimal.NewFromInt(n))
}

// Positive reports whether the amount is strictly greater than zero.
func (m Money) Positive() bool {
	return m.Cents > 0
}

// String formats the amount with two decimal places, e.g. "12.34".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
