//go:build unit || e2e

package builder

import (
	"time"

	dombooking "eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	domquote "eventmarket/internal/domain/quote"

	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	Request        *BookingRequestBuilder
	Quote          *QuoteBuilder
	Number         string
	CommissionRate decimal.Decimal
	PolicySchedule string
	Now            time.Time
}

// NewBookingBuilder wires a matching request and quote pair: the quote totals
// 1500.00 with the default 30% deposit (450.00).
func NewBookingBuilder() *BookingBuilder {
	req := NewBookingRequestBuilder()
	q := NewQuoteBuilder()
	q.RequestID = req.VendorID // replaced below once the request is built
	q.VendorID = req.VendorID
	q.OrganizerID = req.OrganizerID
	q.Items = []domquote.ItemParams{
		{
			Name:        "Event service package",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   money.FromInt(1500),
			DiscountPct: money.ZeroPercent(),
		},
	}
	return &BookingBuilder{
		Request:        req,
		Quote:          q,
		Number:         "B-2026-00001",
		CommissionRate: decimal.RequireFromString("0.15"),
		PolicySchedule: "60:100,30:75,14:50,7:25",
		Now:            req.Now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	r, err := b.Request.BuildDomain()
	if err != nil {
		return nil, err
	}
	b.Quote.RequestID = r.ID()
	q, err := b.Quote.BuildDomain()
	if err != nil {
		return nil, err
	}
	return dombooking.NewFromQuote(q, r, dombooking.NewFromQuoteParams{
		Number:         b.Number,
		CommissionRate: b.CommissionRate,
		PolicySchedule: b.PolicySchedule,
	}, b.Now), nil
}
