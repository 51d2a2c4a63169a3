// Package money provides fixed-point decimal value objects for all financial
// arithmetic in the workflow. Floating point is never used for amounts.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidPercent = errors.New("percent must be between 0 and 100")
)

// minorUnits is the rounding precision for currency amounts. All supported
// currencies use two minor-unit digits.
const minorUnits = 2

// Money is an exact decimal amount, rounded to currency minor units at every
// derivation point.
type Money struct {
	amount decimal.Decimal
}

func Zero() Money {
	return Money{amount: decimal.Zero}
}

func New(d decimal.Decimal) Money {
	return Money{amount: d}
}

func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: d}, nil
}

func FromInt(n int64) Money {
	return Money{amount: decimal.NewFromInt(n)}
}

// NewNonNegative validates that the amount is not negative.
func NewNonNegative(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: d}, nil
}

func (m Money) Decimal() decimal.Decimal { return m.amount }
func (m Money) String() string           { return m.amount.StringFixed(minorUnits) }

func (m Money) Add(other Money) Money { return Money{amount: m.amount.Add(other.amount)} }
func (m Money) Sub(other Money) Money { return Money{amount: m.amount.Sub(other.amount)} }

// Round normalizes the amount to minor-unit precision (half up).
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(minorUnits)}
}

// ApplyPercent returns round(m * pct/100).
func (m Money) ApplyPercent(p Percent) Money {
	return Money{amount: m.amount.Mul(p.value).Div(decimal.NewFromInt(100)).Round(minorUnits)}
}

// MulRate returns round(m * rate) for fractional rates such as commission.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(minorUnits)}
}

func (m Money) IsZero() bool             { return m.amount.IsZero() }
func (m Money) IsNegative() bool         { return m.amount.IsNegative() }
func (m Money) IsPositive() bool         { return m.amount.IsPositive() }
func (m Money) Equal(other Money) bool   { return m.amount.Equal(other.amount) }
func (m Money) LessThan(o Money) bool    { return m.amount.LessThan(o.amount) }
func (m Money) GreaterThan(o Money) bool { return m.amount.GreaterThan(o.amount) }

func (m Money) GreaterThanOrEqual(o Money) bool {
	return m.amount.GreaterThanOrEqual(o.amount)
}

// Percent is a percentage in [0, 100] with decimal precision.
type Percent struct {
	value decimal.Decimal
}

func NewPercent(d decimal.Decimal) (Percent, error) {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return Percent{}, ErrInvalidPercent
	}
	return Percent{value: d}, nil
}

func NewPercentFromInt(n int) (Percent, error) {
	return NewPercent(decimal.NewFromInt(int64(n)))
}

func MustPercent(d decimal.Decimal) Percent {
	p, err := NewPercent(d)
	if err != nil {
		panic(err)
	}
	return p
}

func ZeroPercent() Percent {
	return Percent{value: decimal.Zero}
}

func (p Percent) Decimal() decimal.Decimal { return p.value }
func (p Percent) String() string           { return p.value.String() }
func (p Percent) IsZero() bool             { return p.value.IsZero() }

// Complement returns (100 - p)/100 as a multiplier.
func (p Percent) Complement() decimal.Decimal {
	return decimal.NewFromInt(100).Sub(p.value).Div(decimal.NewFromInt(100))
}
