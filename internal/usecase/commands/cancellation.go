package commands

import (
	"context"
	"log/slog"
	"time"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type CancelBookingCommand struct {
	Reason          string
	ReasonCategory  *string
	Notes           *string
	MutualAgreement bool
}

type CancelBookingResult struct {
	CancellationID uuid.UUID
	LeadDays       int
	RefundPct      money.Percent
	RefundAmount   money.Money
	PenaltyAmount  money.Money
}

type CancellationCommands interface {
	CancelBooking(ctx context.Context, bookingID uuid.UUID, cmd CancelBookingCommand, actor party.Actor) (*CancelBookingResult, error)
}

type cancellationUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events EventPublisher
}

func NewCancellationUseCase(uow shared.UnitOfWork, clk clock.Clock, events EventPublisher) CancellationCommands {
	return &cancellationUseCaseImpl{uow: uow, clock: clk, events: events}
}

// CancelBooking computes the refund/penalty split from the booking's policy
// snapshot and the lead time at this instant, then persists it immutably.
// The compare-and-set from confirmed to cancelled both serializes concurrent
// cancellations and row-locks the booking, so the paid balance read for the
// settlement cannot move underneath it.
func (uc *cancellationUseCaseImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, cmd CancelBookingCommand, actor party.Actor) (*CancelBookingResult, error) {
	if cmd.Reason == "" {
		return nil, cancellation.ErrEmptyReason
	}
	now := uc.clock.Now()

	var (
		result       CancelBookingResult
		refundIssued bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			return derr
		}
		initiator, derr := uc.resolveInitiator(ctx, tx, snap, actor)
		if derr != nil {
			return derr
		}

		affected, derr := tx.Bookings().Cancel(ctx, tx.DB(), bookingID, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrBookingNotCancellable
		}

		b, derr := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if derr != nil {
			return derr
		}

		policy, derr := cancellation.ParseSchedule(b.PolicySchedule())
		if derr != nil {
			slog.Warn("invalid policy snapshot on booking, using default schedule",
				"booking_id", bookingID, "schedule", b.PolicySchedule())
			policy = cancellation.MustParseSchedule(cancellation.DefaultSchedule)
		}
		settlement := cancellation.ComputeSettlement(policy, b.Window().Start(), now, b.AmountPaid())

		if settlement.RefundAmount.IsPositive() {
			if derr = uc.issueSettlementRefund(ctx, tx, b, settlement.RefundAmount, cmd.Reason, now); derr != nil {
				return derr
			}
			refundIssued = true
		}

		c, derr := cancellation.New(cancellation.NewParams{
			BookingID:       bookingID,
			CancelledBy:     actor.UserID,
			Initiator:       initiator,
			Reason:          cmd.Reason,
			ReasonCategory:  cmd.ReasonCategory,
			Settlement:      settlement,
			MutualAgreement: cmd.MutualAgreement,
			Notes:           cmd.Notes,
		}, now)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Cancellations().Create(ctx, tx.DB(), c); derr != nil {
			return derr
		}

		// the accepted request behind the booking is terminated with it
		if _, derr = tx.Requests().TransitionStatus(ctx, tx.DB(), b.RequestID(),
			[]request.Status{request.StatusAccepted}, request.StatusCancelled, now); derr != nil {
			return derr
		}

		result = CancelBookingResult{
			CancellationID: c.ID(),
			LeadDays:       settlement.LeadDays,
			RefundPct:      settlement.RefundPct,
			RefundAmount:   settlement.RefundAmount,
			PenaltyAmount:  settlement.PenaltyAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, TopicBookingCancel, map[string]any{
		"booking_id":     bookingID,
		"refund_amount":  result.RefundAmount.String(),
		"penalty_amount": result.PenaltyAmount.String(),
	})
	if refundIssued {
		uc.events.Publish(ctx, TopicPaymentRefunded, map[string]any{
			"booking_id": bookingID,
			"amount":     result.RefundAmount.String(),
		})
	}
	return &result, nil
}

// issueSettlementRefund records the policy refund through the payment
// ledger, anchored on the booking's latest charge.
func (uc *cancellationUseCaseImpl) issueSettlementRefund(ctx context.Context, tx shared.Tx, b *booking.Booking, amount money.Money, reason string, now time.Time) error {
	affected, err := tx.Bookings().ApplyRefund(ctx, tx.DB(), b.ID(), amount, now)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrRefundExceedsPaid
	}

	orig, err := tx.Payments().FindLatestCharge(ctx, tx.DB(), b.ID())
	if err != nil {
		return err
	}

	number, err := tx.Sequences().Next(ctx, tx.DB(), shared.SequencePayment, now.Year())
	if err != nil {
		return err
	}
	refund, err := booking.NewRefund(booking.NewRefundParams{
		BookingID:         b.ID(),
		Number:            number,
		Amount:            amount,
		Currency:          b.Currency(),
		OriginalPaymentID: orig.ID(),
		Reason:            &reason,
	}, now)
	if err != nil {
		return err
	}
	_, err = tx.Payments().Create(ctx, tx.DB(), refund)
	return err
}

func (uc *cancellationUseCaseImpl) resolveInitiator(ctx context.Context, tx shared.Tx, snap *shared.BookingSnapshot, actor party.Actor) (party.Initiator, error) {
	if actor.Role == party.RoleAdmin {
		return party.InitiatorAdmin, nil
	}
	if snap.OrganizerID == actor.UserID {
		return party.InitiatorOrganizer, nil
	}
	vendor, err := tx.Reads().VendorByID(ctx, snap.VendorID)
	if err != nil {
		return "", err
	}
	if vendor.OwnerUserID == actor.UserID {
		return party.InitiatorVendor, nil
	}
	return "", errs.ErrNotParty
}
