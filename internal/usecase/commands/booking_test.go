//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	dombooking "eventmarket/internal/domain/booking"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBookingDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer updates logistics before the event", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)

		venue := "Grand Ballroom"
		guests := 180
		err := f.bookings().UpdateBookingDetails(ctx, b.ID(), commands.UpdateBookingCommand{
			VenueName:  &venue,
			GuestCount: &guests,
		}, f.organizer)
		require.NoError(t, err)

		stored := f.uow.StoredBooking(b.ID())
		require.NotNil(t, stored.VenueName())
		assert.Equal(t, venue, *stored.VenueName())
		require.NotNil(t, stored.GuestCount())
		assert.Equal(t, guests, *stored.GuestCount())
	})

	t.Run("edits after the event starts are rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)
		f.clk.Set(b.Window().Start().Add(time.Hour))

		venue := "Grand Ballroom"
		err := f.bookings().UpdateBookingDetails(ctx, b.ID(), commands.UpdateBookingCommand{
			VenueName: &venue,
		}, f.organizer)
		assert.ErrorIs(t, err, errs.ErrBookingNotEditable)
	})

	t.Run("vendor cannot edit booking details", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)

		venue := "Grand Ballroom"
		err := f.bookings().UpdateBookingDetails(ctx, b.ID(), commands.UpdateBookingCommand{
			VenueName: &venue,
		}, f.vendor)
		assert.ErrorIs(t, err, errs.ErrNotOrganizer)
	})
}

func TestCompleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("vendor completes the booking after the event", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)
		f.clk.Set(b.Window().Start().Add(24 * time.Hour))

		notes := "delivered as agreed"
		require.NoError(t, f.bookings().CompleteBooking(ctx, b.ID(), &notes, f.vendor))

		stored := f.uow.StoredBooking(b.ID())
		assert.Equal(t, dombooking.StatusCompleted, stored.Status())
		require.NotNil(t, stored.CompletionNotes())
		assert.Equal(t, notes, *stored.CompletionNotes())
		require.NotNil(t, stored.CompletedAt())
		assert.True(t, f.pub.Has(commands.TopicBookingComplete))
	})

	t.Run("completion before the event ends is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)
		f.clk.Set(b.Window().Start().Add(-24 * time.Hour))

		err := f.bookings().CompleteBooking(ctx, b.ID(), nil, f.vendor)
		assert.ErrorIs(t, err, errs.ErrEventNotFinished)
	})

	t.Run("organizer cannot complete the booking", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)
		f.clk.Set(b.Window().Start().Add(24 * time.Hour))

		err := f.bookings().CompleteBooking(ctx, b.ID(), nil, f.organizer)
		assert.ErrorIs(t, err, errs.ErrNotVendor)
	})

	t.Run("cancelled booking cannot be completed", func(t *testing.T) {
		f := newWorkflowFixture()
		b := f.acceptedBooking(t)
		_, err := f.cancellations().CancelBooking(ctx, b.ID(), commands.CancelBookingCommand{
			Reason: "changed plans",
		}, f.organizer)
		require.NoError(t, err)

		f.clk.Set(b.Window().Start().Add(24 * time.Hour))
		err = f.bookings().CompleteBooking(ctx, b.ID(), nil, f.vendor)
		assert.ErrorIs(t, err, errs.ErrBookingNotCompletable)
	})
}
