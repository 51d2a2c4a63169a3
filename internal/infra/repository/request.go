package repository

import (
	"context"
	"time"

	"eventmarket/internal/domain/request"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

const createRequestSQL = `
INSERT INTO booking_requests (
	id, event_id, vendor_id, organizer_id, status,
	title, description,
	event_start, event_end, venue_name, venue_address, guest_count,
	service_category, special_requirements,
	budget_min, budget_max, currency,
	response_deadline, expires_at, preferred_contact_method,
	viewed_by_vendor, viewed_at, responded_at,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5,
	$6, $7,
	$8, $9, $10, $11, $12,
	$13, $14,
	$15::numeric, $16::numeric, $17,
	$18, $19, $20,
	$21, $22, $23,
	$24, $25
)
RETURNING id`

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.BookingRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createRequestSQL,
		req.ID(), req.EventID(), req.VendorID(), req.OrganizerID(), req.Status().String(),
		req.Title(), req.Description(),
		req.Window().Start(), req.Window().End(), req.VenueName(), req.VenueAddress(), req.GuestCount(),
		req.ServiceCategory(), req.SpecialRequirements(),
		converter.MoneyPtrToArg(req.Budget().Min()), converter.MoneyPtrToArg(req.Budget().Max()), req.Currency(),
		req.ResponseDeadline(), req.ExpiresAt(), req.PreferredContactMethod(),
		req.ViewedByVendor(), req.ViewedAt(), req.RespondedAt(),
		req.CreatedAt(), req.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking request", err)
	}
	return id, nil
}

const findRequestSQL = `
SELECT
	id, event_id, vendor_id, organizer_id, status,
	title, description,
	event_start, event_end, venue_name, venue_address, guest_count,
	service_category, special_requirements,
	budget_min::text, budget_max::text, currency,
	response_deadline, expires_at, preferred_contact_method,
	viewed_by_vendor, viewed_at, responded_at,
	created_at, updated_at
FROM booking_requests
WHERE id = $1`

func (r *RequestRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*request.BookingRequest, error) {
	var (
		p          request.ReconstructParams
		status     string
		eventStart time.Time
		eventEnd   *time.Time
		budgetMin  *string
		budgetMax  *string
	)
	err := tx.QueryRow(ctx, findRequestSQL, id).Scan(
		&p.ID, &p.EventID, &p.VendorID, &p.OrganizerID, &status,
		&p.Title, &p.Description,
		&eventStart, &eventEnd, &p.VenueName, &p.VenueAddress, &p.GuestCount,
		&p.ServiceCategory, &p.SpecialRequirements,
		&budgetMin, &budgetMax, &p.Currency,
		&p.ResponseDeadline, &p.ExpiresAt, &p.PreferredContactMethod,
		&p.ViewedByVendor, &p.ViewedAt, &p.RespondedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking request", err)
	}

	minM, err := converter.MoneyPtrFromText(budgetMin)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid budget_min", err)
	}
	maxM, err := converter.MoneyPtrFromText(budgetMax)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid budget_max", err)
	}
	budget, err := request.NewBudgetRange(minM, maxM)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid budget range", err)
	}
	window, err := request.NewEventWindow(eventStart, eventEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid event window", err)
	}

	p.Status = request.Status(status)
	p.Budget = budget
	p.Window = window
	return request.Reconstruct(p), nil
}

const updateRequestDetailsSQL = `
UPDATE booking_requests SET
	title = $2,
	description = $3,
	venue_name = $4,
	venue_address = $5,
	guest_count = $6,
	special_requirements = $7,
	budget_min = $8::numeric,
	budget_max = $9::numeric,
	updated_at = $10
WHERE id = $1`

func (r *RequestRepository) UpdateDetails(ctx context.Context, tx db.DBTX, req *request.BookingRequest) error {
	_, err := tx.Exec(ctx, updateRequestDetailsSQL,
		req.ID(),
		req.Title(), req.Description(),
		req.VenueName(), req.VenueAddress(), req.GuestCount(), req.SpecialRequirements(),
		converter.MoneyPtrToArg(req.Budget().Min()), converter.MoneyPtrToArg(req.Budget().Max()),
		req.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking request", err)
	}
	return nil
}

const markRequestViewedSQL = `
UPDATE booking_requests SET
	viewed_by_vendor = TRUE,
	viewed_at = $2,
	updated_at = $2
WHERE id = $1 AND viewed_by_vendor = FALSE`

// MarkViewed is idempotent: the first view wins, later calls match no rows.
func (r *RequestRepository) MarkViewed(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error {
	if _, err := tx.Exec(ctx, markRequestViewedSQL, id, now); err != nil {
		return infra.WrapRepoErr("failed to mark booking request viewed", err)
	}
	return nil
}

const markRequestQuotedSQL = `
UPDATE booking_requests SET
	status = 'quoted',
	responded_at = COALESCE(responded_at, $2),
	updated_at = $2
WHERE id = $1 AND status IN ('pending', 'quoted')`

func (r *RequestRepository) MarkQuoted(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, markRequestQuotedSQL, id, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark booking request quoted", err)
	}
	return tag.RowsAffected(), nil
}

const transitionRequestSQL = `
UPDATE booking_requests SET
	status = $2,
	updated_at = $3
WHERE id = $1 AND status = ANY($4)`

// TransitionStatus is the compare-and-set behind every contested request
// move; the returned row count tells the caller whether it won.
func (r *RequestRepository) TransitionStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from []request.Status, to request.Status, now time.Time) (int64, error) {
	fromStrs := make([]string, 0, len(from))
	for _, s := range from {
		fromStrs = append(fromStrs, s.String())
	}
	tag, err := tx.Exec(ctx, transitionRequestSQL, id, to.String(), now, fromStrs)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to transition booking request", err)
	}
	return tag.RowsAffected(), nil
}

const expireStaleRequestsSQL = `
UPDATE booking_requests SET
	status = 'expired',
	updated_at = $1
WHERE status IN ('pending', 'quoted') AND expires_at < $1
RETURNING id`

func (r *RequestRepository) ExpireStale(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, expireStaleRequestsSQL, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire stale booking requests", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired request id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired requests", err)
	}
	return ids, nil
}
