package commands

import (
	"context"
	"errors"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/party"
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type UpdateBookingCommand struct {
	VenueName    *string
	VenueAddress *string
	GuestCount   *int
	Notes        *string
}

type BookingCommands interface {
	UpdateBookingDetails(ctx context.Context, bookingID uuid.UUID, cmd UpdateBookingCommand, actor party.Actor) error
	CompleteBooking(ctx context.Context, bookingID uuid.UUID, notes *string, actor party.Actor) error
}

type bookingUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events EventPublisher
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, events EventPublisher) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk, events: events}
}

func (uc *bookingUseCaseImpl) UpdateBookingDetails(ctx context.Context, bookingID uuid.UUID, cmd UpdateBookingCommand, actor party.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if err != nil {
			return err
		}
		if b.OrganizerID() != actor.UserID && actor.Role != party.RoleAdmin {
			return errs.ErrNotOrganizer
		}

		if err = b.UpdateDetails(booking.UpdateDetailsParams{
			VenueName:    cmd.VenueName,
			VenueAddress: cmd.VenueAddress,
			GuestCount:   cmd.GuestCount,
			Notes:        cmd.Notes,
		}, uc.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrBookingNotEditable)
		}

		return tx.Bookings().UpdateDetails(ctx, tx.DB(), b)
	})
}

func (uc *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID, notes *string, actor party.Actor) error {
	now := uc.clock.Now()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if derr != nil {
			return derr
		}
		if derr = uc.requireVendorOwner(ctx, tx, b.VendorID(), actor); derr != nil {
			return derr
		}

		if derr = b.Complete(notes, now); derr != nil {
			switch {
			case errors.Is(derr, booking.ErrEventNotFinished):
				return errs.Mark(derr, errs.ErrEventNotFinished)
			default:
				return errs.Mark(derr, errs.ErrBookingNotCompletable)
			}
		}

		affected, derr := tx.Bookings().Complete(ctx, tx.DB(), bookingID, notes, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrBookingNotCompletable
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ctx, TopicBookingComplete, map[string]any{
		"booking_id": bookingID,
	})
	return nil
}

func (uc *bookingUseCaseImpl) requireVendorOwner(ctx context.Context, tx shared.Tx, vendorID uuid.UUID, actor party.Actor) error {
	if actor.Role == party.RoleAdmin {
		return nil
	}
	vendor, err := tx.Reads().VendorByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if vendor.OwnerUserID != actor.UserID {
		return errs.ErrNotVendor
	}
	return nil
}
