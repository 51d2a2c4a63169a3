//go:build unit

package quote_test

import (
	"testing"
	"time"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/quote"
	"eventmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuote(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewQuoteBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, quote.StatusDraft, actual.Status())
		assert.Equal(t, 1, actual.Version())
		assert.Nil(t, actual.PreviousQuoteID())
		// 12000 + 2*1500
		assert.Equal(t, "15000.00", actual.Subtotal().String())
		assert.Equal(t, "15000.00", actual.Total().String())
		assert.Equal(t, "4500.00", actual.DepositAmount().String())
		assert.Equal(t, b.Now.AddDate(0, 0, quote.DefaultValidityDays), actual.ValidUntil())
	})

	t.Run("explicit validity and deposit", func(t *testing.T) {
		b := builder.NewQuoteBuilder().With(func(b *builder.QuoteBuilder) {
			days := 14
			pct := money.MustPercent(decimal.NewFromInt(50))
			b.ValidityDays = &days
			b.DepositPct = &pct
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, b.Now.AddDate(0, 0, 14), actual.ValidUntil())
		assert.Equal(t, "7500.00", actual.DepositAmount().String())
	})

	t.Run("non-positive validity rejected", func(t *testing.T) {
		b := builder.NewQuoteBuilder().With(func(b *builder.QuoteBuilder) {
			days := 0
			b.ValidityDays = &days
		})
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, quote.ErrInvalidValidity)
	})

	t.Run("empty item list rejected", func(t *testing.T) {
		b := builder.NewQuoteBuilder().With(func(b *builder.QuoteBuilder) {
			b.Items = nil
		})
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, quote.ErrEmptyItems)
	})
}

func buildQuote(t *testing.T) (*quote.Quote, time.Time) {
	t.Helper()
	b := builder.NewQuoteBuilder()
	q, err := b.BuildDomain()
	require.NoError(t, err)
	return q, b.Now
}

func TestQuoteTransitions(t *testing.T) {
	t.Run("send only from draft", func(t *testing.T) {
		q, now := buildQuote(t)

		require.NoError(t, q.Send(now))
		assert.Equal(t, quote.StatusSent, q.Status())
		require.NotNil(t, q.SentAt())

		assert.ErrorIs(t, q.Send(now), quote.ErrNotSendable)
	})

	t.Run("mark viewed records first view only", func(t *testing.T) {
		q, now := buildQuote(t)

		// draft is invisible to the organizer
		q.MarkViewed(now)
		assert.Equal(t, quote.StatusDraft, q.Status())

		require.NoError(t, q.Send(now))
		q.MarkViewed(now.Add(time.Hour))
		assert.Equal(t, quote.StatusViewed, q.Status())
		first := *q.ViewedAt()

		q.MarkViewed(now.Add(2 * time.Hour))
		assert.Equal(t, first, *q.ViewedAt())
	})

	t.Run("mark viewed on terminal quote is a no-op", func(t *testing.T) {
		q, now := buildQuote(t)
		require.NoError(t, q.Send(now))
		require.NoError(t, q.Reject(nil, now))

		q.MarkViewed(now)
		assert.Equal(t, quote.StatusRejected, q.Status())
		assert.Nil(t, q.ViewedAt())
	})

	t.Run("accept from sent or viewed", func(t *testing.T) {
		q, now := buildQuote(t)

		assert.ErrorIs(t, q.Accept(now), quote.ErrNotAcceptable)

		require.NoError(t, q.Send(now))
		require.NoError(t, q.Accept(now))
		assert.Equal(t, quote.StatusAccepted, q.Status())
		require.NotNil(t, q.RespondedAt())

		assert.ErrorIs(t, q.Accept(now), quote.ErrNotAcceptable)
	})

	t.Run("accept blocked past validity", func(t *testing.T) {
		q, now := buildQuote(t)
		require.NoError(t, q.Send(now))

		late := q.ValidUntil().Add(time.Minute)
		assert.ErrorIs(t, q.Accept(late), quote.ErrExpired)

		// at the boundary the quote is still acceptable
		assert.NoError(t, q.CanAccept(q.ValidUntil()))
	})

	t.Run("reject stores the reason", func(t *testing.T) {
		q, now := buildQuote(t)
		require.NoError(t, q.Send(now))

		reason := "over budget"
		require.NoError(t, q.Reject(&reason, now))
		assert.Equal(t, quote.StatusRejected, q.Status())
		require.NotNil(t, q.RejectionReason())
		assert.Equal(t, reason, *q.RejectionReason())
	})

	t.Run("expire leaves terminal quotes untouched", func(t *testing.T) {
		q, now := buildQuote(t)
		require.NoError(t, q.Send(now))
		require.NoError(t, q.Accept(now))

		assert.ErrorIs(t, q.Expire(now), quote.ErrAlreadyTerminal)

		q2, now2 := buildQuote(t)
		require.NoError(t, q2.Expire(now2))
		assert.Equal(t, quote.StatusExpired, q2.Status())
	})
}

func TestNewRevision(t *testing.T) {
	t.Run("revision chains off a rejected quote", func(t *testing.T) {
		b := builder.NewQuoteBuilder()
		q, err := b.BuildDomain()
		require.NoError(t, err)
		now := b.Now

		require.NoError(t, q.Send(now))
		require.NoError(t, q.Reject(nil, now))

		items, err := b.BuildItems()
		require.NoError(t, err)
		rev, err := q.NewRevision(quote.NewQuoteParams{
			RequestID:   q.RequestID(),
			VendorID:    q.VendorID(),
			OrganizerID: q.OrganizerID(),
			Number:      "Q-2026-00002",
			Items:       items,
			Currency:    q.Currency(),
			TaxRate:     q.TaxRate(),
			Discount:    money.FromInt(500),
		}, now)
		require.NoError(t, err)

		assert.Equal(t, quote.StatusDraft, rev.Status())
		assert.Equal(t, 2, rev.Version())
		require.NotNil(t, rev.PreviousQuoteID())
		assert.Equal(t, q.ID(), *rev.PreviousQuoteID())
		assert.Equal(t, "14500.00", rev.Total().String())
	})

	t.Run("revision requires rejected predecessor", func(t *testing.T) {
		q, now := buildQuote(t)
		_, err := q.NewRevision(quote.NewQuoteParams{}, now)
		assert.ErrorIs(t, err, quote.ErrNotRevisable)
	})
}
