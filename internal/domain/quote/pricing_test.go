//go:build unit

package quote_test

import (
	"math/rand"
	"testing"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/quote"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, p quote.ItemParams, idx int) quote.Item {
	t.Helper()
	item, err := quote.NewItem(p, idx)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("line total applies item discount", func(t *testing.T) {
		item := mustItem(t, quote.ItemParams{
			Name:        "Catering per head",
			Quantity:    decimal.NewFromInt(100),
			UnitPrice:   money.FromInt(250),
			DiscountPct: money.MustPercent(decimal.NewFromInt(10)),
		}, 0)

		assert.Equal(t, "25000.00", item.Subtotal().String())
		assert.Equal(t, "22500.00", item.LineTotal().String())
	})

	t.Run("fractional quantity rounds half up", func(t *testing.T) {
		item := mustItem(t, quote.ItemParams{
			Name:        "Setup hours",
			Quantity:    decimal.RequireFromString("2.5"),
			UnitPrice:   money.FromInt(333),
			DiscountPct: money.MustPercent(decimal.NewFromInt(3)),
		}, 0)

		// 2.5 * 333 * 0.97 = 807.525 -> 807.53
		assert.Equal(t, "807.53", item.LineTotal().String())
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name  string
			p     quote.ItemParams
			errIs error
		}{
			{
				name:  "empty name",
				p:     quote.ItemParams{Quantity: decimal.NewFromInt(1), UnitPrice: money.FromInt(1)},
				errIs: quote.ErrEmptyItemName,
			},
			{
				name:  "zero quantity",
				p:     quote.ItemParams{Name: "x", Quantity: decimal.Zero, UnitPrice: money.FromInt(1)},
				errIs: quote.ErrNonPositiveQuantity,
			},
			{
				name:  "negative unit price",
				p:     quote.ItemParams{Name: "x", Quantity: decimal.NewFromInt(1), UnitPrice: money.FromInt(-1)},
				errIs: quote.ErrNegativeUnitPrice,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := quote.NewItem(tc.p, 0)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestComputePricing(t *testing.T) {
	deposit30 := money.MustPercent(decimal.NewFromInt(30))

	t.Run("discount applied before tax", func(t *testing.T) {
		items := []quote.Item{
			mustItem(t, quote.ItemParams{
				Name:        "Venue rental",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   money.FromInt(10000),
				DiscountPct: money.ZeroPercent(),
			}, 0),
		}

		got, err := quote.ComputePricing(items, money.FromInt(1000), decimal.RequireFromString("0.20"), deposit30)
		require.NoError(t, err)

		assert.Equal(t, "10000.00", got.Subtotal.String())
		assert.Equal(t, "1000.00", got.Discount.String())
		// tax on the discounted base: (10000 - 1000) * 0.20
		assert.Equal(t, "1800.00", got.Tax.String())
		assert.Equal(t, "10800.00", got.Total.String())
		assert.Equal(t, "3240.00", got.DepositAmount.String())
	})

	t.Run("empty items rejected", func(t *testing.T) {
		_, err := quote.ComputePricing(nil, money.Zero(), decimal.Zero, deposit30)
		assert.ErrorIs(t, err, quote.ErrEmptyItems)
	})

	t.Run("discount beyond subtotal rejected", func(t *testing.T) {
		items := []quote.Item{
			mustItem(t, quote.ItemParams{
				Name:        "Small job",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   money.FromInt(100),
				DiscountPct: money.ZeroPercent(),
			}, 0),
		}
		_, err := quote.ComputePricing(items, money.FromInt(101), decimal.Zero, deposit30)
		assert.ErrorIs(t, err, quote.ErrDiscountExceedsSubtotal)
	})

	t.Run("negative tax rate rejected", func(t *testing.T) {
		items := []quote.Item{
			mustItem(t, quote.ItemParams{
				Name:        "x",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   money.FromInt(100),
				DiscountPct: money.ZeroPercent(),
			}, 0),
		}
		_, err := quote.ComputePricing(items, money.Zero(), decimal.NewFromInt(-1), deposit30)
		assert.ErrorIs(t, err, quote.ErrNegativeTaxRate)
	})

	t.Run("breakdown identity holds for random item sets", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for range 200 {
			n := 1 + rng.Intn(6)
			items := make([]quote.Item, 0, n)
			for i := range n {
				items = append(items, mustItem(t, quote.ItemParams{
					Name:        "item",
					Quantity:    decimal.New(int64(1+rng.Intn(400)), -2),
					UnitPrice:   money.New(decimal.New(int64(1+rng.Intn(500000)), -2)),
					DiscountPct: money.MustPercent(decimal.NewFromInt(int64(rng.Intn(101)))),
				}, i))
			}
			taxRate := decimal.New(int64(rng.Intn(30)), -2)

			got, err := quote.ComputePricing(items, money.Zero(), taxRate, deposit30)
			require.NoError(t, err)

			sum := money.Zero()
			for _, it := range items {
				sum = sum.Add(it.LineTotal())
			}
			assert.True(t, got.Subtotal.Equal(sum))
			assert.True(t, got.Total.Equal(got.Subtotal.Sub(got.Discount).Add(got.Tax)),
				"total must equal subtotal - discount + tax")
			assert.False(t, got.Total.IsNegative())
			assert.False(t, got.DepositAmount.GreaterThan(got.Total))
		}
	})
}
