package repository

import (
	"context"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/repository/converter"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the minimal snapshots commands validate against. It is
// bound to whatever DBTX it was built with: the pool outside transactions,
// the open transaction inside one.
type CommandReads struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{dbtx: dbtx}
}

const requestSnapshotSQL = `
SELECT id, event_id, vendor_id, organizer_id, status, currency, event_start, event_end, expires_at
FROM booking_requests
WHERE id = $1`

func (r *CommandReads) RequestByID(ctx context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	var (
		s      shared.RequestSnapshot
		status string
	)
	err := r.dbtx.QueryRow(ctx, requestSnapshotSQL, id).Scan(
		&s.ID, &s.EventID, &s.VendorID, &s.OrganizerID, &status, &s.Currency, &s.EventStart, &s.EventEnd, &s.ExpiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read request snapshot", err)
	}
	s.Status = request.Status(status)
	return &s, nil
}

const quoteSnapshotSQL = `
SELECT id, request_id, vendor_id, organizer_id, status, version, currency, total::text, deposit_amount::text, valid_until
FROM quotes
WHERE id = $1`

func (r *CommandReads) QuoteByID(ctx context.Context, id uuid.UUID) (*shared.QuoteSnapshot, error) {
	var (
		s              shared.QuoteSnapshot
		status         string
		total, deposit string
	)
	err := r.dbtx.QueryRow(ctx, quoteSnapshotSQL, id).Scan(
		&s.ID, &s.RequestID, &s.VendorID, &s.OrganizerID, &status, &s.Version, &s.Currency, &total, &deposit, &s.ValidUntil,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read quote snapshot", err)
	}
	if s.Total, err = converter.MoneyFromText(total); err != nil {
		return nil, infra.WrapRepoErr("invalid quote total", err)
	}
	if s.Deposit, err = converter.MoneyFromText(deposit); err != nil {
		return nil, infra.WrapRepoErr("invalid quote deposit", err)
	}
	s.Status = quote.Status(status)
	return &s, nil
}

const hasOpenQuoteSQL = `
SELECT EXISTS (
	SELECT 1 FROM quotes
	WHERE request_id = $1 AND status IN ('draft', 'sent', 'viewed')
)`

func (r *CommandReads) HasOpenQuote(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var open bool
	if err := r.dbtx.QueryRow(ctx, hasOpenQuoteSQL, requestID).Scan(&open); err != nil {
		return false, infra.WrapRepoErr("failed to check open quotes", err)
	}
	return open, nil
}

const bookingSnapshotSQL = `
SELECT id, quote_id, request_id, vendor_id, organizer_id, status, payment_status, currency,
	event_start, event_end, total_amount::text, deposit_amount::text, amount_paid::text, policy_schedule
FROM bookings
WHERE id = $1`

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		s                    shared.BookingSnapshot
		status, payStatus    string
		total, deposit, paid string
	)
	err := r.dbtx.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&s.ID, &s.QuoteID, &s.RequestID, &s.VendorID, &s.OrganizerID, &status, &payStatus, &s.Currency,
		&s.EventStart, &s.EventEnd, &total, &deposit, &paid, &s.PolicySchedule,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read booking snapshot", err)
	}
	if s.TotalAmount, err = converter.MoneyFromText(total); err != nil {
		return nil, infra.WrapRepoErr("invalid booking total", err)
	}
	if s.DepositAmount, err = converter.MoneyFromText(deposit); err != nil {
		return nil, infra.WrapRepoErr("invalid booking deposit", err)
	}
	if s.AmountPaid, err = converter.MoneyFromText(paid); err != nil {
		return nil, infra.WrapRepoErr("invalid booking amount_paid", err)
	}
	s.Status = booking.Status(status)
	s.PaymentStatus = booking.PaymentStatus(payStatus)
	return &s, nil
}

const paymentSnapshotSQL = `
SELECT id, booking_id, amount::text, currency, is_refund, status
FROM booking_payments
WHERE id = $1`

func (r *CommandReads) PaymentByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	var (
		s      shared.PaymentSnapshot
		amount string
		status string
	)
	err := r.dbtx.QueryRow(ctx, paymentSnapshotSQL, id).Scan(
		&s.ID, &s.BookingID, &amount, &s.Currency, &s.IsRefund, &status,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read payment snapshot", err)
	}
	if s.Amount, err = converter.MoneyFromText(amount); err != nil {
		return nil, infra.WrapRepoErr("invalid payment amount", err)
	}
	s.Status = booking.TxStatus(status)
	return &s, nil
}

const vendorSnapshotSQL = `
SELECT id, owner_user_id, display_name, active, commission_rate::text, policy_text, policy_schedule
FROM vendors
WHERE id = $1`

func (r *CommandReads) VendorByID(ctx context.Context, id uuid.UUID) (*shared.VendorSnapshot, error) {
	var (
		s    shared.VendorSnapshot
		rate string
	)
	err := r.dbtx.QueryRow(ctx, vendorSnapshotSQL, id).Scan(
		&s.ID, &s.OwnerUserID, &s.DisplayName, &s.Active, &rate, &s.PolicyText, &s.PolicySchedule,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read vendor snapshot", err)
	}
	if s.CommissionRate, err = converter.DecimalFromText(rate); err != nil {
		return nil, infra.WrapRepoErr("invalid commission_rate", err)
	}
	return &s, nil
}
