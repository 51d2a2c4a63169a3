//go:build unit

package request_test

import (
	"testing"
	"time"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/request"
	"eventmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingRequest(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingRequestBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, request.StatusPending, actual.Status())
		assert.Equal(t, b.Now, actual.CreatedAt())
		assert.Equal(t, b.Now, actual.UpdatedAt())
		assert.False(t, actual.ViewedByVendor())
		assert.Nil(t, actual.RespondedAt())
	})

	t.Run("expiry defaults to thirty days", func(t *testing.T) {
		b := builder.NewBookingRequestBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, b.Now.AddDate(0, 0, request.DefaultExpiryDays), actual.ExpiresAt())
	})

	t.Run("explicit response deadline wins over default expiry", func(t *testing.T) {
		b := builder.NewBookingRequestBuilder()
		deadline := b.Now.AddDate(0, 0, 7)
		b.ResponseDeadline = &deadline

		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, deadline, actual.ExpiresAt())
	})

	t.Run("empty title rejected", func(t *testing.T) {
		b := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
			b.Title = ""
		})
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, request.ErrEmptyTitle)
	})

	t.Run("event date in the past rejected", func(t *testing.T) {
		b := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
			b.EventStart = b.Now.AddDate(0, 0, -1)
		})
		_, err := b.BuildDomain()
		assert.ErrorIs(t, err, request.ErrEventDateInPast)
	})

	t.Run("currency defaults when omitted", func(t *testing.T) {
		b := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
			b.Currency = ""
		})
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "TRY", actual.Currency())
	})
}

func TestBudgetRange(t *testing.T) {
	t.Run("max below min rejected", func(t *testing.T) {
		minB := money.FromInt(5000)
		maxB := money.FromInt(1000)
		_, err := request.NewBudgetRange(&minB, &maxB)
		assert.ErrorIs(t, err, request.ErrInvalidBudgetRange)
	})

	t.Run("single bound accepted", func(t *testing.T) {
		minB := money.FromInt(5000)
		got, err := request.NewBudgetRange(&minB, nil)
		require.NoError(t, err)
		assert.Nil(t, got.Max())
	})

	t.Run("negative bound rejected", func(t *testing.T) {
		minB := money.FromInt(-1)
		_, err := request.NewBudgetRange(&minB, nil)
		assert.ErrorIs(t, err, request.ErrNegativeBudget)
	})
}

func TestRequestTransitions(t *testing.T) {
	build := func(t *testing.T) (*request.BookingRequest, time.Time) {
		t.Helper()
		b := builder.NewBookingRequestBuilder()
		r, err := b.BuildDomain()
		require.NoError(t, err)
		return r, b.Now
	}

	t.Run("mark viewed is idempotent", func(t *testing.T) {
		r, now := build(t)

		r.MarkViewedByVendor(now)
		require.True(t, r.ViewedByVendor())
		first := *r.ViewedAt()

		r.MarkViewedByVendor(now.Add(time.Hour))
		assert.Equal(t, first, *r.ViewedAt())
	})

	t.Run("mark quoted moves pending to quoted and stamps responded_at", func(t *testing.T) {
		r, now := build(t)

		require.NoError(t, r.MarkQuoted(now))
		assert.Equal(t, request.StatusQuoted, r.Status())
		require.NotNil(t, r.RespondedAt())

		// quoted stays quoted on a revision
		require.NoError(t, r.MarkQuoted(now.Add(time.Hour)))
		assert.Equal(t, request.StatusQuoted, r.Status())
	})

	t.Run("accept requires quoted", func(t *testing.T) {
		r, now := build(t)

		assert.ErrorIs(t, r.Accept(now), request.ErrAlreadyResolved)

		require.NoError(t, r.MarkQuoted(now))
		require.NoError(t, r.Accept(now))
		assert.Equal(t, request.StatusAccepted, r.Status())

		assert.ErrorIs(t, r.Accept(now), request.ErrAlreadyResolved)
	})

	t.Run("cancel rejected once terminal", func(t *testing.T) {
		r, now := build(t)

		require.NoError(t, r.Cancel(now))
		assert.Equal(t, request.StatusCancelled, r.Status())
		assert.ErrorIs(t, r.Cancel(now), request.ErrAlreadyResolved)
	})

	t.Run("cancel follows a booking cancellation out of accepted", func(t *testing.T) {
		r, now := build(t)

		require.NoError(t, r.MarkQuoted(now))
		require.NoError(t, r.Accept(now))

		require.NoError(t, r.Cancel(now))
		assert.Equal(t, request.StatusCancelled, r.Status())
	})

	t.Run("cancel still refused after expiry", func(t *testing.T) {
		r, now := build(t)

		require.NoError(t, r.Expire(now))
		assert.ErrorIs(t, r.Cancel(now), request.ErrAlreadyResolved)
	})

	t.Run("expire only sweeps open statuses", func(t *testing.T) {
		r, now := build(t)

		require.NoError(t, r.MarkQuoted(now))
		require.NoError(t, r.Accept(now))
		assert.ErrorIs(t, r.Expire(now), request.ErrAlreadyResolved)

		r2, now2 := build(t)
		require.NoError(t, r2.Expire(now2))
		assert.Equal(t, request.StatusExpired, r2.Status())
	})

	t.Run("update details blocked after quoting", func(t *testing.T) {
		r, now := build(t)

		title := "Updated title"
		require.NoError(t, r.UpdateDetails(request.UpdateDetailsParams{Title: &title}, now))
		assert.Equal(t, title, r.Title())

		require.NoError(t, r.MarkQuoted(now))
		assert.ErrorIs(t, r.UpdateDetails(request.UpdateDetailsParams{Title: &title}, now), request.ErrNotEditable)
	})
}

func TestIsExpired(t *testing.T) {
	b := builder.NewBookingRequestBuilder()
	r, err := b.BuildDomain()
	require.NoError(t, err)

	assert.False(t, r.IsExpired(r.ExpiresAt()))
	assert.True(t, r.IsExpired(r.ExpiresAt().Add(time.Second)))
}
