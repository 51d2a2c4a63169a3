package queries

import (
	"context"
	"time"

	"eventmarket/internal/domain/party"
	"eventmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	QuoteID          uuid.UUID  `json:"quote_id"`
	RequestID        uuid.UUID  `json:"request_id"`
	EventID          uuid.UUID  `json:"event_id"`
	VendorID         uuid.UUID  `json:"vendor_id"`
	VendorName       string     `json:"vendor_name"`
	OrganizerID      uuid.UUID  `json:"organizer_id"`
	Number           string     `json:"number"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	ServiceTitle     string     `json:"service_title"`
	EventStart       time.Time  `json:"event_start"`
	EventEnd         *time.Time `json:"event_end,omitempty"`
	VenueName        *string    `json:"venue_name,omitempty"`
	VenueAddress     *string    `json:"venue_address,omitempty"`
	GuestCount       *int       `json:"guest_count,omitempty"`
	Currency         string     `json:"currency"`
	TotalAmount      string     `json:"total_amount"`
	DepositAmount    string     `json:"deposit_amount"`
	AmountPaid       string     `json:"amount_paid"`
	AmountDue        string     `json:"amount_due"`
	CommissionRate   string     `json:"commission_rate"`
	CommissionAmount string     `json:"commission_amount"`
	PolicyText       *string    `json:"policy_text,omitempty"`
	PolicySchedule   string     `json:"policy_schedule"`
	Notes            *string    `json:"notes,omitempty"`
	CompletionNotes  *string    `json:"completion_notes,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	VendorOwnerID uuid.UUID `json:"-"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ServiceTitle  string    `json:"service_title"`
	EventStart    time.Time `json:"event_start"`
	TotalAmount   string    `json:"total_amount"`
	AmountDue     string    `json:"amount_due"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentView struct {
	ID                uuid.UUID  `json:"id"`
	BookingID         uuid.UUID  `json:"booking_id"`
	Number            string     `json:"number"`
	Amount            string     `json:"amount"`
	Currency          string     `json:"currency"`
	IsDeposit         bool       `json:"is_deposit"`
	IsRefund          bool       `json:"is_refund"`
	Status            string     `json:"status"`
	OriginalPaymentID *uuid.UUID `json:"original_payment_id,omitempty"`
	Method            *string    `json:"method,omitempty"`
	GatewayRef        *string    `json:"gateway_ref,omitempty"`
	Reason            *string    `json:"reason,omitempty"`
	ProcessedAt       time.Time  `json:"processed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

type CancellationView struct {
	ID              uuid.UUID `json:"id"`
	BookingID       uuid.UUID `json:"booking_id"`
	Initiator       string    `json:"initiator"`
	Reason          string    `json:"reason"`
	ReasonCategory  *string   `json:"reason_category,omitempty"`
	LeadDays        int       `json:"lead_days"`
	CancelledAt     time.Time `json:"cancelled_at"`
	RefundPct       string    `json:"refund_pct"`
	RefundAmount    string    `json:"refund_amount"`
	PenaltyAmount   string    `json:"penalty_amount"`
	MutualAgreement bool      `json:"mutual_agreement"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor party.Actor) (*BookingView, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]*BookingListItem, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, actor party.Actor, limit int) ([]*BookingListItem, error)
	ListPayments(ctx context.Context, bookingID uuid.UUID, actor party.Actor) ([]*PaymentView, error)
	GetCancellation(ctx context.Context, bookingID uuid.UUID, actor party.Actor) (*CancellationView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindPayments(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	FindCancellation(ctx context.Context, bookingID uuid.UUID) (*CancellationView, error)
	VendorOwnerID(ctx context.Context, vendorID uuid.UUID) (uuid.UUID, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor party.Actor) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isBookingParty(view, actor) {
		return nil, errs.ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByOrganizer(ctx, organizerID, int32(limit))
}

func (q *bookingQueriesImpl) ListByVendor(ctx context.Context, vendorID uuid.UUID, actor party.Actor, limit int) ([]*BookingListItem, error) {
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

func (q *bookingQueriesImpl) ListPayments(ctx context.Context, bookingID uuid.UUID, actor party.Actor) ([]*PaymentView, error) {
	view, err := q.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isBookingParty(view, actor) {
		return nil, errs.ErrBookingNotFound
	}
	return q.repo.FindPayments(ctx, bookingID)
}

func (q *bookingQueriesImpl) GetCancellation(ctx context.Context, bookingID uuid.UUID, actor party.Actor) (*CancellationView, error) {
	view, err := q.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isBookingParty(view, actor) {
		return nil, errs.ErrBookingNotFound
	}
	return q.repo.FindCancellation(ctx, bookingID)
}

func isBookingParty(view *BookingView, actor party.Actor) bool {
	return actor.IsAdmin() || actor.UserID == view.OrganizerID || actor.UserID == view.VendorOwnerID
}
