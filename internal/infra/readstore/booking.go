package readstore

import (
	"context"

	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewSQL = `
SELECT
	b.id, b.quote_id, b.request_id, b.event_id, b.vendor_id, v.display_name, v.owner_user_id, b.organizer_id,
	b.number, b.status, b.payment_status,
	b.service_title, b.event_start, b.event_end, b.venue_name, b.venue_address, b.guest_count,
	b.currency, b.total_amount::text, b.deposit_amount::text, b.amount_paid::text,
	(b.total_amount - b.amount_paid)::text,
	b.commission_rate::text, b.commission_amount::text,
	b.policy_text, b.policy_schedule,
	b.notes, b.completion_notes, b.completed_at, b.cancelled_at,
	b.created_at, b.updated_at
FROM bookings b
JOIN vendors v ON v.id = b.vendor_id
WHERE b.id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var view queries.BookingView
	err := s.db.QueryRow(ctx, bookingViewSQL, id).Scan(
		&view.ID, &view.QuoteID, &view.RequestID, &view.EventID, &view.VendorID, &view.VendorName, &view.VendorOwnerID, &view.OrganizerID,
		&view.Number, &view.Status, &view.PaymentStatus,
		&view.ServiceTitle, &view.EventStart, &view.EventEnd, &view.VenueName, &view.VenueAddress, &view.GuestCount,
		&view.Currency, &view.TotalAmount, &view.DepositAmount, &view.AmountPaid,
		&view.AmountDue,
		&view.CommissionRate, &view.CommissionAmount,
		&view.PolicyText, &view.PolicySchedule,
		&view.Notes, &view.CompletionNotes, &view.CompletedAt, &view.CancelledAt,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return &view, nil
}

const bookingListByOrganizerSQL = `
SELECT
	id, number, status, payment_status, service_title,
	event_start, total_amount::text, (total_amount - amount_paid)::text, currency, created_at
FROM bookings
WHERE organizer_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (s *BookingReadStore) FindByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return s.listBookings(ctx, bookingListByOrganizerSQL, organizerID, limit)
}

const bookingListByVendorSQL = `
SELECT
	id, number, status, payment_status, service_title,
	event_start, total_amount::text, (total_amount - amount_paid)::text, currency, created_at
FROM bookings
WHERE vendor_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (s *BookingReadStore) FindByVendor(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	return s.listBookings(ctx, bookingListByVendorSQL, vendorID, limit)
}

func (s *BookingReadStore) listBookings(ctx context.Context, sql string, ownerID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, sql, ownerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.Number, &item.Status, &item.PaymentStatus, &item.ServiceTitle,
			&item.EventStart, &item.TotalAmount, &item.AmountDue, &item.Currency, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

const paymentViewsSQL = `
SELECT
	id, booking_id, number, amount::text, currency,
	is_deposit, is_refund, status, original_payment_id,
	method, gateway_ref, reason,
	processed_at, created_at
FROM booking_payments
WHERE booking_id = $1
ORDER BY processed_at ASC, created_at ASC`

func (s *BookingReadStore) FindPayments(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := s.db.Query(ctx, paymentViewsSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	var result []*queries.PaymentView
	for rows.Next() {
		var view queries.PaymentView
		if err := rows.Scan(
			&view.ID, &view.BookingID, &view.Number, &view.Amount, &view.Currency,
			&view.IsDeposit, &view.IsRefund, &view.Status, &view.OriginalPaymentID,
			&view.Method, &view.GatewayRef, &view.Reason,
			&view.ProcessedAt, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return result, nil
}

const cancellationViewSQL = `
SELECT
	id, booking_id, initiator, reason, reason_category,
	lead_days, cancelled_at,
	refund_pct::text, refund_amount::text, penalty_amount::text,
	mutual_agreement, notes, created_at
FROM booking_cancellations
WHERE booking_id = $1`

func (s *BookingReadStore) FindCancellation(ctx context.Context, bookingID uuid.UUID) (*queries.CancellationView, error) {
	var view queries.CancellationView
	err := s.db.QueryRow(ctx, cancellationViewSQL, bookingID).Scan(
		&view.ID, &view.BookingID, &view.Initiator, &view.Reason, &view.ReasonCategory,
		&view.LeadDays, &view.CancelledAt,
		&view.RefundPct, &view.RefundAmount, &view.PenaltyAmount,
		&view.MutualAgreement, &view.Notes, &view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cancellation view", err)
	}
	return &view, nil
}

const bookingVendorOwnerSQL = `SELECT owner_user_id FROM vendors WHERE id = $1`

func (s *BookingReadStore) VendorOwnerID(ctx context.Context, vendorID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	if err := s.db.QueryRow(ctx, bookingVendorOwnerSQL, vendorID).Scan(&owner); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to resolve vendor owner", err)
	}
	return owner, nil
}
