package commands

import (
	"context"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type RecordPaymentCommand struct {
	Amount     money.Money
	IsDeposit  bool
	Method     *string
	GatewayRef *string
}

type RecordRefundCommand struct {
	Amount            money.Money
	OriginalPaymentID uuid.UUID
	Reason            *string
}

type RecordPaymentResult struct {
	PaymentID     uuid.UUID
	Number        string
	PaymentStatus booking.PaymentStatus
	AmountPaid    money.Money
	AmountDue     money.Money
}

type PaymentCommands interface {
	RecordPayment(ctx context.Context, bookingID uuid.UUID, cmd RecordPaymentCommand, actor party.Actor) (*RecordPaymentResult, error)
	RecordRefund(ctx context.Context, bookingID uuid.UUID, cmd RecordRefundCommand, actor party.Actor) (*RecordPaymentResult, error)
}

type paymentUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events EventPublisher
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, events EventPublisher) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, clock: clk, events: events}
}

// RecordPayment appends a succeeded charge and moves the booking's running
// balance in the same transaction. The balance update is a single guarded
// statement, so two concurrent payments can never drive amount_paid past the
// total: the loser's guard fails and the command reports overpayment.
func (uc *paymentUseCaseImpl) RecordPayment(ctx context.Context, bookingID uuid.UUID, cmd RecordPaymentCommand, actor party.Actor) (*RecordPaymentResult, error) {
	if !cmd.Amount.IsPositive() {
		return nil, errs.ErrNonPositiveAmount
	}
	now := uc.clock.Now()

	var result RecordPaymentResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			return derr
		}
		if derr = uc.requireParty(ctx, tx, snap, actor); derr != nil {
			return derr
		}
		if snap.Status == booking.StatusCancelled {
			return errs.ErrBookingNotPayable
		}

		affected, derr := tx.Bookings().ApplyPayment(ctx, tx.DB(), bookingID, cmd.Amount, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrOverpayment
		}

		number, derr := tx.Sequences().Next(ctx, tx.DB(), shared.SequencePayment, now.Year())
		if derr != nil {
			return derr
		}
		p, derr := booking.NewCharge(booking.NewChargeParams{
			BookingID:  bookingID,
			Number:     number,
			Amount:     cmd.Amount,
			Currency:   snap.Currency,
			IsDeposit:  cmd.IsDeposit,
			Method:     cmd.Method,
			GatewayRef: cmd.GatewayRef,
		}, now)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Payments().Create(ctx, tx.DB(), p); derr != nil {
			return derr
		}

		b, derr := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if derr != nil {
			return derr
		}
		result = RecordPaymentResult{
			PaymentID:     p.ID(),
			Number:        p.Number(),
			PaymentStatus: b.PaymentStatus(),
			AmountPaid:    b.AmountPaid(),
			AmountDue:     b.AmountDue(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, TopicPaymentRecorded, map[string]any{
		"booking_id": bookingID,
		"payment_id": result.PaymentID,
		"amount":     cmd.Amount.String(),
	})
	return &result, nil
}

// RecordRefund appends a succeeded refund against an earlier charge. Refunds
// report money already moved by the payment collaborator; the ledger never
// initiates gateway calls itself.
func (uc *paymentUseCaseImpl) RecordRefund(ctx context.Context, bookingID uuid.UUID, cmd RecordRefundCommand, actor party.Actor) (*RecordPaymentResult, error) {
	if !cmd.Amount.IsPositive() {
		return nil, errs.ErrNonPositiveAmount
	}
	now := uc.clock.Now()

	var result RecordPaymentResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			return derr
		}
		if derr = uc.requireVendorOrAdmin(ctx, tx, snap, actor); derr != nil {
			return derr
		}

		orig, derr := tx.Payments().FindByID(ctx, tx.DB(), cmd.OriginalPaymentID)
		if derr != nil {
			return derr
		}
		if orig.BookingID() != bookingID || orig.IsRefund() || orig.TxStatus() != booking.TxSucceeded {
			return errs.ErrPaymentNotRefundable
		}

		affected, derr := tx.Bookings().ApplyRefund(ctx, tx.DB(), bookingID, cmd.Amount, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrRefundExceedsPaid
		}

		number, derr := tx.Sequences().Next(ctx, tx.DB(), shared.SequencePayment, now.Year())
		if derr != nil {
			return derr
		}
		p, derr := booking.NewRefund(booking.NewRefundParams{
			BookingID:         bookingID,
			Number:            number,
			Amount:            cmd.Amount,
			Currency:          snap.Currency,
			OriginalPaymentID: cmd.OriginalPaymentID,
			Reason:            cmd.Reason,
		}, now)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Payments().Create(ctx, tx.DB(), p); derr != nil {
			return derr
		}

		b, derr := tx.Bookings().FindByID(ctx, tx.DB(), bookingID)
		if derr != nil {
			return derr
		}
		result = RecordPaymentResult{
			PaymentID:     p.ID(),
			Number:        p.Number(),
			PaymentStatus: b.PaymentStatus(),
			AmountPaid:    b.AmountPaid(),
			AmountDue:     b.AmountDue(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, TopicPaymentRefunded, map[string]any{
		"booking_id": bookingID,
		"payment_id": result.PaymentID,
		"amount":     cmd.Amount.String(),
	})
	return &result, nil
}

// requireParty admits the organizer, the vendor's owner, or an admin.
func (uc *paymentUseCaseImpl) requireParty(ctx context.Context, tx shared.Tx, snap *shared.BookingSnapshot, actor party.Actor) error {
	if actor.Role == party.RoleAdmin || snap.OrganizerID == actor.UserID {
		return nil
	}
	vendor, err := tx.Reads().VendorByID(ctx, snap.VendorID)
	if err != nil {
		return err
	}
	if vendor.OwnerUserID != actor.UserID {
		return errs.ErrNotParty
	}
	return nil
}

func (uc *paymentUseCaseImpl) requireVendorOrAdmin(ctx context.Context, tx shared.Tx, snap *shared.BookingSnapshot, actor party.Actor) error {
	if actor.Role == party.RoleAdmin {
		return nil
	}
	vendor, err := tx.Reads().VendorByID(ctx, snap.VendorID)
	if err != nil {
		return err
	}
	if vendor.OwnerUserID != actor.UserID {
		return errs.ErrNotVendor
	}
	return nil
}
