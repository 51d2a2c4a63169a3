//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"eventmarket/internal/domain/money"
	domquote "eventmarket/internal/domain/quote"
	domrequest "eventmarket/internal/domain/request"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/commands"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequestCommand(f *workflowFixture) commands.CreateRequestCommand {
	return commands.CreateRequestCommand{
		EventID:     uuid.New(),
		VendorID:    f.vendorID,
		Title:       "Wedding photography",
		Description: "Full-day coverage with two photographers",
		EventStart:  f.clk.Now().AddDate(0, 2, 0),
		Currency:    "TRY",
	}
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer opens a pending request with a default expiry", func(t *testing.T) {
		f := newWorkflowFixture()

		result, err := f.requests().CreateRequest(ctx, createRequestCommand(f), f.organizer)
		require.NoError(t, err)

		stored := f.uow.StoredRequest(result.RequestID)
		require.NotNil(t, stored)
		assert.Equal(t, domrequest.StatusPending, stored.Status())
		assert.Equal(t, f.organizer.UserID, stored.OrganizerID())
		assert.Equal(t, f.clk.Now().AddDate(0, 0, domrequest.DefaultExpiryDays), stored.ExpiresAt())
		assert.True(t, f.pub.Has(commands.TopicRequestCreated))
	})

	t.Run("explicit response deadline overrides the default expiry", func(t *testing.T) {
		f := newWorkflowFixture()
		deadline := f.clk.Now().AddDate(0, 0, 7)

		cmd := createRequestCommand(f)
		cmd.ResponseDeadline = &deadline
		result, err := f.requests().CreateRequest(ctx, cmd, f.organizer)
		require.NoError(t, err)
		assert.Equal(t, deadline, f.uow.StoredRequest(result.RequestID).ExpiresAt())
	})

	t.Run("vendor role cannot open requests", func(t *testing.T) {
		f := newWorkflowFixture()

		_, err := f.requests().CreateRequest(ctx, createRequestCommand(f), f.vendor)
		assert.ErrorIs(t, err, errs.ErrNotOrganizer)
	})

	t.Run("inactive vendor is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		inactiveID := uuid.New()
		f.uow.SeedVendor(shared.VendorSnapshot{
			ID:             inactiveID,
			OwnerUserID:    uuid.New(),
			DisplayName:    "Closed Shop",
			Active:         false,
			CommissionRate: decimal.RequireFromString("0.15"),
		})

		cmd := createRequestCommand(f)
		cmd.VendorID = inactiveID
		_, err := f.requests().CreateRequest(ctx, cmd, f.organizer)
		assert.ErrorIs(t, err, errs.ErrVendorInactive)
	})

	t.Run("inverted budget range is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		minB := money.FromInt(5000)
		maxB := money.FromInt(1000)

		cmd := createRequestCommand(f)
		cmd.BudgetMin = &minB
		cmd.BudgetMax = &maxB
		_, err := f.requests().CreateRequest(ctx, cmd, f.organizer)
		assert.ErrorIs(t, err, errs.ErrInvalidBudgetRange)
	})

	t.Run("event in the past is rejected", func(t *testing.T) {
		f := newWorkflowFixture()

		cmd := createRequestCommand(f)
		cmd.EventStart = f.clk.Now().AddDate(0, 0, -1)
		_, err := f.requests().CreateRequest(ctx, cmd, f.organizer)
		assert.ErrorIs(t, err, domrequest.ErrEventDateInPast)
	})
}

func TestUpdateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer edits a pending request", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		title := "Wedding photography and video"
		guests := 200
		err := f.requests().UpdateRequest(ctx, r.ID(), commands.UpdateRequestCommand{
			Title:      &title,
			GuestCount: &guests,
		}, f.organizer)
		require.NoError(t, err)

		stored := f.uow.StoredRequest(r.ID())
		assert.Equal(t, title, stored.Title())
		require.NotNil(t, stored.GuestCount())
		assert.Equal(t, guests, *stored.GuestCount())
	})

	t.Run("quoted request is no longer editable", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		f.seedSentQuote(t, r)

		title := "New title"
		err := f.requests().UpdateRequest(ctx, r.ID(), commands.UpdateRequestCommand{
			Title: &title,
		}, f.organizer)
		assert.ErrorIs(t, err, errs.ErrRequestNotEditable)
	})

	t.Run("outsider cannot edit", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		title := "New title"
		err := f.requests().UpdateRequest(ctx, r.ID(), commands.UpdateRequestCommand{
			Title: &title,
		}, f.stranger)
		assert.ErrorIs(t, err, errs.ErrNotOrganizer)
	})
}

func TestMarkViewedByVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("first view stamps the request, repeats keep the original stamp", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		require.NoError(t, f.requests().MarkViewedByVendor(ctx, r.ID(), f.vendor))
		first := f.uow.StoredRequest(r.ID())
		assert.True(t, first.ViewedByVendor())
		require.NotNil(t, first.ViewedAt())

		f.clk.Add(time.Hour)
		require.NoError(t, f.requests().MarkViewedByVendor(ctx, r.ID(), f.vendor))
		assert.Equal(t, first.ViewedAt(), f.uow.StoredRequest(r.ID()).ViewedAt())
	})

	t.Run("non-owner vendor cannot mark viewed", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		err := f.requests().MarkViewedByVendor(ctx, r.ID(), f.stranger)
		assert.ErrorIs(t, err, errs.ErrNotVendor)
	})
}

func TestCancelRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling a quoted request expires its open quote", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		require.NoError(t, f.requests().CancelRequest(ctx, r.ID(), f.organizer))

		assert.Equal(t, domrequest.StatusCancelled, f.uow.StoredRequest(r.ID()).Status())
		assert.Equal(t, domquote.StatusExpired, f.uow.StoredQuote(q.ID()).Status())
	})

	t.Run("resolved request cannot be cancelled again", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		require.NoError(t, f.requests().CancelRequest(ctx, r.ID(), f.organizer))

		err := f.requests().CancelRequest(ctx, r.ID(), f.organizer)
		assert.ErrorIs(t, err, errs.ErrRequestAlreadyResolved)
	})
}

func TestExpireStaleRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("sweep expires open requests past their window with their quotes", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)
		f.clk.Set(r.ExpiresAt().Add(time.Hour))

		count, err := f.requests().ExpireStaleRequests(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		assert.Equal(t, domrequest.StatusExpired, f.uow.StoredRequest(r.ID()).Status())
		assert.Equal(t, domquote.StatusExpired, f.uow.StoredQuote(q.ID()).Status())
		assert.True(t, f.pub.Has(commands.TopicRequestExpired))
	})

	t.Run("sweep is idempotent", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		f.clk.Set(r.ExpiresAt().Add(time.Hour))

		count, err := f.requests().ExpireStaleRequests(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = f.requests().ExpireStaleRequests(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("nothing stale leaves the store untouched", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		count, err := f.requests().ExpireStaleRequests(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Equal(t, domrequest.StatusPending, f.uow.StoredRequest(r.ID()).Status())
	})
}
