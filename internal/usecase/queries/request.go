package queries

import (
	"context"
	"time"

	"eventmarket/internal/domain/party"
	"eventmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RequestView struct {
	ID                     uuid.UUID  `json:"id"`
	EventID                uuid.UUID  `json:"event_id"`
	VendorID               uuid.UUID  `json:"vendor_id"`
	VendorName             string     `json:"vendor_name"`
	OrganizerID            uuid.UUID  `json:"organizer_id"`
	Status                 string     `json:"status"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	EventStart             time.Time  `json:"event_start"`
	EventEnd               *time.Time `json:"event_end,omitempty"`
	VenueName              *string    `json:"venue_name,omitempty"`
	VenueAddress           *string    `json:"venue_address,omitempty"`
	GuestCount             *int       `json:"guest_count,omitempty"`
	ServiceCategory        *string    `json:"service_category,omitempty"`
	SpecialRequirements    *string    `json:"special_requirements,omitempty"`
	BudgetMin              *string    `json:"budget_min,omitempty"`
	BudgetMax              *string    `json:"budget_max,omitempty"`
	Currency               string     `json:"currency"`
	ResponseDeadline       *time.Time `json:"response_deadline,omitempty"`
	ExpiresAt              time.Time  `json:"expires_at"`
	PreferredContactMethod *string    `json:"preferred_contact_method,omitempty"`
	ViewedByVendor         bool       `json:"viewed_by_vendor"`
	ViewedAt               *time.Time `json:"viewed_at,omitempty"`
	RespondedAt            *time.Time `json:"responded_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	// VendorOwnerID supports the party check and is never serialized.
	VendorOwnerID uuid.UUID `json:"-"`
}

type RequestListItem struct {
	ID         uuid.UUID `json:"id"`
	VendorID   uuid.UUID `json:"vendor_id"`
	VendorName string    `json:"vendor_name"`
	Status     string    `json:"status"`
	Title      string    `json:"title"`
	EventStart time.Time `json:"event_start"`
	Currency   string    `json:"currency"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type RequestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor party.Actor) (*RequestView, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]*RequestListItem, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, actor party.Actor, limit int) ([]*RequestListItem, error)
}

type RequestViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int32) ([]*RequestListItem, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*RequestListItem, error)
	VendorOwnerID(ctx context.Context, vendorID uuid.UUID) (uuid.UUID, error)
}

type requestQueriesImpl struct {
	repo RequestViewRepo
}

func NewRequestQueries(repo RequestViewRepo) RequestQueries {
	return &requestQueriesImpl{repo: repo}
}

// GetByID hides the resource from non-parties: callers outside the
// organizer/vendor pair see not-found, not forbidden.
func (q *requestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor party.Actor) (*RequestView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != view.OrganizerID && actor.UserID != view.VendorOwnerID {
		return nil, errs.ErrRequestNotFound
	}
	return view, nil
}

func (q *requestQueriesImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]*RequestListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByOrganizer(ctx, organizerID, int32(limit))
}

func (q *requestQueriesImpl) ListByVendor(ctx context.Context, vendorID uuid.UUID, actor party.Actor, limit int) ([]*RequestListItem, error) {
	if !actor.IsAdmin() {
		owner, err := q.repo.VendorOwnerID(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		if owner != actor.UserID {
			return nil, errs.ErrVendorNotFound
		}
	}
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByVendor(ctx, vendorID, int32(limit))
}
