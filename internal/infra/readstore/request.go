package readstore

import (
	"context"

	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(db db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: db}
}

const requestViewSQL = `
SELECT
	r.id, r.event_id, r.vendor_id, v.display_name, v.owner_user_id, r.organizer_id,
	r.status, r.title, r.description,
	r.event_start, r.event_end, r.venue_name, r.venue_address, r.guest_count,
	r.service_category, r.special_requirements,
	r.budget_min::text, r.budget_max::text, r.currency,
	r.response_deadline, r.expires_at, r.preferred_contact_method,
	r.viewed_by_vendor, r.viewed_at, r.responded_at,
	r.created_at, r.updated_at
FROM booking_requests r
JOIN vendors v ON v.id = r.vendor_id
WHERE r.id = $1`

func (s *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	var view queries.RequestView
	err := s.db.QueryRow(ctx, requestViewSQL, id).Scan(
		&view.ID, &view.EventID, &view.VendorID, &view.VendorName, &view.VendorOwnerID, &view.OrganizerID,
		&view.Status, &view.Title, &view.Description,
		&view.EventStart, &view.EventEnd, &view.VenueName, &view.VenueAddress, &view.GuestCount,
		&view.ServiceCategory, &view.SpecialRequirements,
		&view.BudgetMin, &view.BudgetMax, &view.Currency,
		&view.ResponseDeadline, &view.ExpiresAt, &view.PreferredContactMethod,
		&view.ViewedByVendor, &view.ViewedAt, &view.RespondedAt,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request view", err)
	}
	return &view, nil
}

const requestListByOrganizerSQL = `
SELECT
	r.id, r.vendor_id, v.display_name, r.status, r.title,
	r.event_start, r.currency, r.expires_at, r.created_at
FROM booking_requests r
JOIN vendors v ON v.id = r.vendor_id
WHERE r.organizer_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`

func (s *RequestReadStore) FindByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int32) ([]*queries.RequestListItem, error) {
	return s.listRequests(ctx, requestListByOrganizerSQL, organizerID, limit)
}

const requestListByVendorSQL = `
SELECT
	r.id, r.vendor_id, v.display_name, r.status, r.title,
	r.event_start, r.currency, r.expires_at, r.created_at
FROM booking_requests r
JOIN vendors v ON v.id = r.vendor_id
WHERE r.vendor_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2`

func (s *RequestReadStore) FindByVendor(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*queries.RequestListItem, error) {
	return s.listRequests(ctx, requestListByVendorSQL, vendorID, limit)
}

func (s *RequestReadStore) listRequests(ctx context.Context, sql string, ownerID uuid.UUID, limit int32) ([]*queries.RequestListItem, error) {
	rows, err := s.db.Query(ctx, sql, ownerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	defer rows.Close()

	var result []*queries.RequestListItem
	for rows.Next() {
		var item queries.RequestListItem
		if err := rows.Scan(
			&item.ID, &item.VendorID, &item.VendorName, &item.Status, &item.Title,
			&item.EventStart, &item.Currency, &item.ExpiresAt, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return result, nil
}

const vendorOwnerSQL = `SELECT owner_user_id FROM vendors WHERE id = $1`

func (s *RequestReadStore) VendorOwnerID(ctx context.Context, vendorID uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	if err := s.db.QueryRow(ctx, vendorOwnerSQL, vendorID).Scan(&owner); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to resolve vendor owner", err)
	}
	return owner, nil
}
