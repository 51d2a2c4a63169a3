package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEventDateInPast = errors.New("event date cannot be in the past")
	ErrEmptyTitle      = errors.New("title is required")
	ErrNotEditable     = errors.New("request is not editable in its current status")
	ErrNotOpen         = errors.New("request is not open")
	ErrAlreadyResolved = errors.New("request already resolved")
)

// DefaultExpiryDays is applied when the organizer gives no response deadline.
const DefaultExpiryDays = 30

// BookingRequest is an organizer's inquiry to one vendor for one event.
type BookingRequest struct {
	id          uuid.UUID
	eventID     uuid.UUID
	vendorID    uuid.UUID
	organizerID uuid.UUID
	status      Status

	title       string
	description string

	window       EventWindow
	venueName    *string
	venueAddress *string
	guestCount   *int

	serviceCategory     *string
	specialRequirements *string

	budget   BudgetRange
	currency string

	responseDeadline *time.Time
	expiresAt        time.Time

	preferredContactMethod *string

	viewedByVendor bool
	viewedAt       *time.Time
	respondedAt    *time.Time

	createdAt time.Time
	updatedAt time.Time
}

type NewRequestParams struct {
	EventID                uuid.UUID
	VendorID               uuid.UUID
	OrganizerID            uuid.UUID
	Title                  string
	Description            string
	Window                 EventWindow
	VenueName              *string
	VenueAddress           *string
	GuestCount             *int
	ServiceCategory        *string
	SpecialRequirements    *string
	Budget                 BudgetRange
	Currency               string
	ResponseDeadline       *time.Time
	PreferredContactMethod *string
}

// NewBookingRequest creates a pending request. The expiry window is the
// explicit response deadline when given, otherwise now + DefaultExpiryDays.
func NewBookingRequest(p NewRequestParams, now time.Time) (*BookingRequest, error) {
	if p.Title == "" {
		return nil, ErrEmptyTitle
	}
	if p.Window.Start().Before(now) {
		return nil, ErrEventDateInPast
	}

	expiresAt := now.AddDate(0, 0, DefaultExpiryDays)
	if p.ResponseDeadline != nil {
		expiresAt = *p.ResponseDeadline
	}

	currency := p.Currency
	if currency == "" {
		currency = "TRY"
	}

	return &BookingRequest{
		id:                     uuid.New(),
		eventID:                p.EventID,
		vendorID:               p.VendorID,
		organizerID:            p.OrganizerID,
		status:                 StatusPending,
		title:                  p.Title,
		description:            p.Description,
		window:                 p.Window,
		venueName:              p.VenueName,
		venueAddress:           p.VenueAddress,
		guestCount:             p.GuestCount,
		serviceCategory:        p.ServiceCategory,
		specialRequirements:    p.SpecialRequirements,
		budget:                 p.Budget,
		currency:               currency,
		responseDeadline:       p.ResponseDeadline,
		expiresAt:              expiresAt,
		preferredContactMethod: p.PreferredContactMethod,
		createdAt:              now,
		updatedAt:              now,
	}, nil
}

type ReconstructParams struct {
	ID                     uuid.UUID
	EventID                uuid.UUID
	VendorID               uuid.UUID
	OrganizerID            uuid.UUID
	Status                 Status
	Title                  string
	Description            string
	Window                 EventWindow
	VenueName              *string
	VenueAddress           *string
	GuestCount             *int
	ServiceCategory        *string
	SpecialRequirements    *string
	Budget                 BudgetRange
	Currency               string
	ResponseDeadline       *time.Time
	ExpiresAt              time.Time
	PreferredContactMethod *string
	ViewedByVendor         bool
	ViewedAt               *time.Time
	RespondedAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func Reconstruct(p ReconstructParams) *BookingRequest {
	return &BookingRequest{
		id:                     p.ID,
		eventID:                p.EventID,
		vendorID:               p.VendorID,
		organizerID:            p.OrganizerID,
		status:                 p.Status,
		title:                  p.Title,
		description:            p.Description,
		window:                 p.Window,
		venueName:              p.VenueName,
		venueAddress:           p.VenueAddress,
		guestCount:             p.GuestCount,
		serviceCategory:        p.ServiceCategory,
		specialRequirements:    p.SpecialRequirements,
		budget:                 p.Budget,
		currency:               p.Currency,
		responseDeadline:       p.ResponseDeadline,
		expiresAt:              p.ExpiresAt,
		preferredContactMethod: p.PreferredContactMethod,
		viewedByVendor:         p.ViewedByVendor,
		viewedAt:               p.ViewedAt,
		respondedAt:            p.RespondedAt,
		createdAt:              p.CreatedAt,
		updatedAt:              p.UpdatedAt,
	}
}

func (r *BookingRequest) ID() uuid.UUID          { return r.id }
func (r *BookingRequest) EventID() uuid.UUID     { return r.eventID }
func (r *BookingRequest) VendorID() uuid.UUID    { return r.vendorID }
func (r *BookingRequest) OrganizerID() uuid.UUID { return r.organizerID }
func (r *BookingRequest) Status() Status         { return r.status }
func (r *BookingRequest) Title() string          { return r.title }
func (r *BookingRequest) Description() string    { return r.description }
func (r *BookingRequest) Window() EventWindow    { return r.window }
func (r *BookingRequest) VenueName() *string     { return r.venueName }
func (r *BookingRequest) VenueAddress() *string  { return r.venueAddress }
func (r *BookingRequest) GuestCount() *int       { return r.guestCount }
func (r *BookingRequest) Budget() BudgetRange    { return r.budget }
func (r *BookingRequest) Currency() string       { return r.currency }
func (r *BookingRequest) ExpiresAt() time.Time   { return r.expiresAt }
func (r *BookingRequest) ViewedByVendor() bool   { return r.viewedByVendor }
func (r *BookingRequest) ViewedAt() *time.Time   { return r.viewedAt }
func (r *BookingRequest) RespondedAt() *time.Time {
	return r.respondedAt
}
func (r *BookingRequest) ServiceCategory() *string     { return r.serviceCategory }
func (r *BookingRequest) SpecialRequirements() *string { return r.specialRequirements }
func (r *BookingRequest) ResponseDeadline() *time.Time { return r.responseDeadline }
func (r *BookingRequest) PreferredContactMethod() *string {
	return r.preferredContactMethod
}
func (r *BookingRequest) CreatedAt() time.Time { return r.createdAt }
func (r *BookingRequest) UpdatedAt() time.Time { return r.updatedAt }

// UpdateDetails applies organizer edits; permitted only while the request
// is draft or pending.
type UpdateDetailsParams struct {
	Title               *string
	Description         *string
	VenueName           *string
	VenueAddress        *string
	GuestCount          *int
	SpecialRequirements *string
	Budget              *BudgetRange
}

func (r *BookingRequest) UpdateDetails(p UpdateDetailsParams, now time.Time) error {
	if !r.status.Editable() {
		return ErrNotEditable
	}
	if p.Title != nil {
		if *p.Title == "" {
			return ErrEmptyTitle
		}
		r.title = *p.Title
	}
	if p.Description != nil {
		r.description = *p.Description
	}
	if p.VenueName != nil {
		r.venueName = p.VenueName
	}
	if p.VenueAddress != nil {
		r.venueAddress = p.VenueAddress
	}
	if p.GuestCount != nil {
		r.guestCount = p.GuestCount
	}
	if p.SpecialRequirements != nil {
		r.specialRequirements = p.SpecialRequirements
	}
	if p.Budget != nil {
		r.budget = *p.Budget
	}
	r.updatedAt = now
	return nil
}

// MarkViewedByVendor is idempotent.
func (r *BookingRequest) MarkViewedByVendor(now time.Time) {
	if r.viewedByVendor {
		return
	}
	r.viewedByVendor = true
	r.viewedAt = &now
	r.updatedAt = now
}

// MarkQuoted transitions pending -> quoted when a vendor issues the first
// quote; quoted stays quoted.
func (r *BookingRequest) MarkQuoted(now time.Time) error {
	if !r.status.Quotable() {
		return ErrNotOpen
	}
	r.status = StatusQuoted
	r.respondedAt = &now
	r.updatedAt = now
	return nil
}

func (r *BookingRequest) Accept(now time.Time) error {
	if r.status != StatusQuoted {
		return ErrAlreadyResolved
	}
	r.status = StatusAccepted
	r.updatedAt = now
	return nil
}

// Cancel closes the request. An accepted request may still be cancelled:
// cancelling its booking cancels the request with it.
func (r *BookingRequest) Cancel(now time.Time) error {
	switch r.status {
	case StatusRejected, StatusExpired, StatusCancelled:
		return ErrAlreadyResolved
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return nil
}

// Expire transitions a stale request; callers must only invoke it when the
// status is still sweepable (compare-and-set at the store level).
func (r *BookingRequest) Expire(now time.Time) error {
	if !r.status.Sweepable() {
		return ErrAlreadyResolved
	}
	r.status = StatusExpired
	r.updatedAt = now
	return nil
}

// IsExpired reports whether the request is past its expiry window.
func (r *BookingRequest) IsExpired(now time.Time) bool {
	return now.After(r.expiresAt)
}
