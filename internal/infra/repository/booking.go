package repository

import (
	"context"
	"time"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, quote_id, request_id, event_id, vendor_id, organizer_id,
	number, status, payment_status,
	service_title, event_start, event_end, venue_name, venue_address, guest_count,
	currency, total_amount, deposit_amount, amount_paid,
	commission_rate, commission_amount,
	policy_text, policy_schedule,
	notes, completion_notes, completed_at, cancelled_at,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6,
	$7, $8, $9,
	$10, $11, $12, $13, $14, $15,
	$16, $17::numeric, $18::numeric, $19::numeric,
	$20::numeric, $21::numeric,
	$22, $23,
	$24, $25, $26, $27,
	$28, $29
)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.QuoteID(), b.RequestID(), b.EventID(), b.VendorID(), b.OrganizerID(),
		b.Number(), b.Status().String(), b.PaymentStatus().String(),
		b.ServiceTitle(), b.Window().Start(), b.Window().End(), b.VenueName(), b.VenueAddress(), b.GuestCount(),
		b.Currency(), converter.MoneyToArg(b.TotalAmount()), converter.MoneyToArg(b.DepositAmount()), converter.MoneyToArg(b.AmountPaid()),
		converter.DecimalToArg(b.CommissionRate()), converter.MoneyToArg(b.CommissionAmount()),
		b.PolicyText(), b.PolicySchedule(),
		b.Notes(), b.CompletionNotes(), b.CompletedAt(), b.CancelledAt(),
		b.CreatedAt(), b.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const findBookingSQL = `
SELECT
	id, quote_id, request_id, event_id, vendor_id, organizer_id,
	number, status, payment_status,
	service_title, event_start, event_end, venue_name, venue_address, guest_count,
	currency, total_amount::text, deposit_amount::text, amount_paid::text,
	commission_rate::text, commission_amount::text,
	policy_text, policy_schedule,
	notes, completion_notes, completed_at, cancelled_at,
	created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		p                                      booking.ReconstructParams
		status, paymentStatus                  string
		eventStart                             time.Time
		eventEnd                               *time.Time
		total, deposit, paid, rate, commission string
	)
	err := tx.QueryRow(ctx, findBookingSQL, id).Scan(
		&p.ID, &p.QuoteID, &p.RequestID, &p.EventID, &p.VendorID, &p.OrganizerID,
		&p.Number, &status, &paymentStatus,
		&p.ServiceTitle, &eventStart, &eventEnd, &p.VenueName, &p.VenueAddress, &p.GuestCount,
		&p.Currency, &total, &deposit, &paid,
		&rate, &commission,
		&p.PolicyText, &p.PolicySchedule,
		&p.Notes, &p.CompletionNotes, &p.CompletedAt, &p.CancelledAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	window, err := request.NewEventWindow(eventStart, eventEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid event window", err)
	}
	p.Window = window
	if p.TotalAmount, err = converter.MoneyFromText(total); err != nil {
		return nil, infra.WrapRepoErr("invalid total_amount", err)
	}
	if p.DepositAmount, err = converter.MoneyFromText(deposit); err != nil {
		return nil, infra.WrapRepoErr("invalid deposit_amount", err)
	}
	if p.AmountPaid, err = converter.MoneyFromText(paid); err != nil {
		return nil, infra.WrapRepoErr("invalid amount_paid", err)
	}
	if p.CommissionRate, err = converter.DecimalFromText(rate); err != nil {
		return nil, infra.WrapRepoErr("invalid commission_rate", err)
	}
	if p.CommissionAmount, err = converter.MoneyFromText(commission); err != nil {
		return nil, infra.WrapRepoErr("invalid commission_amount", err)
	}
	p.Status = booking.Status(status)
	p.PaymentStatus = booking.PaymentStatus(paymentStatus)

	return booking.Reconstruct(p), nil
}

const updateBookingDetailsSQL = `
UPDATE bookings SET
	venue_name = $2,
	venue_address = $3,
	guest_count = $4,
	notes = $5,
	updated_at = $6
WHERE id = $1`

func (r *BookingRepository) UpdateDetails(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, updateBookingDetailsSQL,
		b.ID(), b.VenueName(), b.VenueAddress(), b.GuestCount(), b.Notes(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	return nil
}

// applyPaymentSQL moves the running balance and re-derives payment_status in
// one statement. The guard rejects overpayment and payments against a
// cancelled booking; concurrent payments serialize on the row lock, so the
// loser re-evaluates the guard against the winner's balance.
const applyPaymentSQL = `
UPDATE bookings SET
	amount_paid = amount_paid + $2::numeric,
	payment_status = CASE
		WHEN amount_paid + $2::numeric >= total_amount AND total_amount > 0 THEN 'paid'
		WHEN amount_paid + $2::numeric > deposit_amount AND deposit_amount > 0 THEN 'partial'
		WHEN amount_paid + $2::numeric = deposit_amount AND deposit_amount > 0 THEN 'deposit_paid'
		ELSE 'pending'
	END,
	updated_at = $3
WHERE id = $1
	AND status <> 'cancelled'
	AND total_amount - amount_paid >= $2::numeric`

func (r *BookingRepository) ApplyPayment(ctx context.Context, tx db.DBTX, id uuid.UUID, amount money.Money, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, applyPaymentSQL, id, converter.MoneyToArg(amount), now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to apply payment", err)
	}
	return tag.RowsAffected(), nil
}

const applyRefundSQL = `
UPDATE bookings SET
	amount_paid = amount_paid - $2::numeric,
	payment_status = CASE
		WHEN amount_paid - $2::numeric = 0 THEN 'refunded'
		WHEN amount_paid - $2::numeric >= total_amount AND total_amount > 0 THEN 'paid'
		WHEN amount_paid - $2::numeric > deposit_amount AND deposit_amount > 0 THEN 'partial'
		WHEN amount_paid - $2::numeric = deposit_amount AND deposit_amount > 0 THEN 'deposit_paid'
		ELSE 'pending'
	END,
	updated_at = $3
WHERE id = $1
	AND amount_paid >= $2::numeric`

func (r *BookingRepository) ApplyRefund(ctx context.Context, tx db.DBTX, id uuid.UUID, amount money.Money, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, applyRefundSQL, id, converter.MoneyToArg(amount), now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to apply refund", err)
	}
	return tag.RowsAffected(), nil
}

const completeBookingSQL = `
UPDATE bookings SET
	status = 'completed',
	completion_notes = $2,
	completed_at = $3,
	updated_at = $3
WHERE id = $1 AND status = 'confirmed'`

func (r *BookingRepository) Complete(ctx context.Context, tx db.DBTX, id uuid.UUID, notes *string, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, completeBookingSQL, id, notes, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete booking", err)
	}
	return tag.RowsAffected(), nil
}

const cancelBookingSQL = `
UPDATE bookings SET
	status = 'cancelled',
	cancelled_at = $2,
	updated_at = $2
WHERE id = $1 AND status = 'confirmed'`

// Cancel also takes the row lock the settlement computation relies on.
func (r *BookingRepository) Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, cancelBookingSQL, id, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel booking", err)
	}
	return tag.RowsAffected(), nil
}
