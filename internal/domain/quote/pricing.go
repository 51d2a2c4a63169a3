package quote

import (
	"errors"

	"eventmarket/internal/domain/money"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyItems              = errors.New("quote requires at least one item")
	ErrNegativeTaxRate         = errors.New("tax rate cannot be negative")
	ErrNegativeDiscount        = errors.New("discount cannot be negative")
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds subtotal")
)

// PriceBreakdown is the derived money of a quote. Every component is rounded
// to minor units at its own derivation point, so the identity
// total = subtotal - discount + tax holds exactly.
type PriceBreakdown struct {
	Subtotal      money.Money
	Discount      money.Money
	Tax           money.Money
	Total         money.Money
	DepositAmount money.Money
}

// ComputePricing derives the full breakdown from the item list.
//
// The quote-level discount is applied before tax: tax is charged on the
// discounted base, not the raw subtotal.
func ComputePricing(items []Item, discount money.Money, taxRate decimal.Decimal, depositPct money.Percent) (PriceBreakdown, error) {
	if len(items) == 0 {
		return PriceBreakdown{}, ErrEmptyItems
	}
	if discount.IsNegative() {
		return PriceBreakdown{}, ErrNegativeDiscount
	}
	if taxRate.IsNegative() {
		return PriceBreakdown{}, ErrNegativeTaxRate
	}

	subtotal := money.Zero()
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	if discount.GreaterThan(subtotal) {
		return PriceBreakdown{}, ErrDiscountExceedsSubtotal
	}

	base := subtotal.Sub(discount)
	tax := base.MulRate(taxRate)
	total := base.Add(tax)

	return PriceBreakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		Tax:           tax,
		Total:         total,
		DepositAmount: total.ApplyPercent(depositPct),
	}, nil
}
