//go:build unit || e2e

package builder

import (
	"time"

	"eventmarket/internal/domain/money"
	domquote "eventmarket/internal/domain/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteBuilder struct {
	RequestID    uuid.UUID
	VendorID     uuid.UUID
	OrganizerID  uuid.UUID
	Number       string
	Items        []domquote.ItemParams
	Currency     string
	TaxRate      decimal.Decimal
	Discount     money.Money
	DepositPct   *money.Percent
	ValidityDays *int
	Now          time.Time
}

func NewQuoteBuilder() *QuoteBuilder {
	return &QuoteBuilder{
		RequestID:   uuid.New(),
		VendorID:    uuid.New(),
		OrganizerID: uuid.New(),
		Number:      "Q-2026-00001",
		Items: []domquote.ItemParams{
			{
				Name:        "Full-day coverage",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   money.FromInt(12000),
				DiscountPct: money.ZeroPercent(),
			},
			{
				Name:        "Photo album",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   money.FromInt(1500),
				DiscountPct: money.ZeroPercent(),
			},
		},
		Currency: "TRY",
		TaxRate:  decimal.Zero,
		Discount: money.Zero(),
		Now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *QuoteBuilder) With(mutate func(*QuoteBuilder)) *QuoteBuilder {
	mutate(b)
	return b
}

func (b *QuoteBuilder) BuildItems() ([]domquote.Item, error) {
	items := make([]domquote.Item, 0, len(b.Items))
	for i, p := range b.Items {
		item, err := domquote.NewItem(p, i)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (b *QuoteBuilder) BuildDomain() (*domquote.Quote, error) {
	items, err := b.BuildItems()
	if err != nil {
		return nil, err
	}
	return domquote.NewQuote(domquote.NewQuoteParams{
		RequestID:    b.RequestID,
		VendorID:     b.VendorID,
		OrganizerID:  b.OrganizerID,
		Number:       b.Number,
		Items:        items,
		Currency:     b.Currency,
		TaxRate:      b.TaxRate,
		Discount:     b.Discount,
		DepositPct:   b.DepositPct,
		ValidityDays: b.ValidityDays,
	}, b.Now)
}
