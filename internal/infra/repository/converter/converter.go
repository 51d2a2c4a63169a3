// Package converter translates between domain value objects and the text
// representations used on the wire to PostgreSQL. Numerics always travel as
// strings so no precision is lost in float conversions.
package converter

import (
	"eventmarket/internal/domain/money"

	"github.com/shopspring/decimal"
)

func MoneyToArg(m money.Money) string {
	return m.Decimal().String()
}

func MoneyPtrToArg(m *money.Money) *string {
	if m == nil {
		return nil
	}
	s := m.Decimal().String()
	return &s
}

func MoneyFromText(s string) (money.Money, error) {
	return money.FromString(s)
}

func MoneyPtrFromText(s *string) (*money.Money, error) {
	if s == nil {
		return nil, nil
	}
	m, err := money.FromString(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func PercentToArg(p money.Percent) string {
	return p.Decimal().String()
}

func PercentFromText(s string) (money.Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return money.Percent{}, err
	}
	return money.NewPercent(d)
}

func DecimalToArg(d decimal.Decimal) string {
	return d.String()
}

func DecimalFromText(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
