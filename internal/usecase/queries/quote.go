package queries

import (
	"context"
	"time"

	"eventmarket/internal/domain/party"
	"eventmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

type QuoteItemView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Unit        *string   `json:"unit,omitempty"`
	Quantity    string    `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	DiscountPct string    `json:"discount_pct"`
	Subtotal    string    `json:"subtotal"`
	LineTotal   string    `json:"line_total"`
	OrderIndex  int       `json:"order_index"`
}

type QuoteView struct {
	ID              uuid.UUID       `json:"id"`
	RequestID       uuid.UUID       `json:"request_id"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	VendorName      string          `json:"vendor_name"`
	OrganizerID     uuid.UUID       `json:"organizer_id"`
	Number          string          `json:"number"`
	Status          string          `json:"status"`
	Version         int             `json:"version"`
	PreviousQuoteID *uuid.UUID      `json:"previous_quote_id,omitempty"`
	Items           []QuoteItemView `json:"items"`
	Currency        string          `json:"currency"`
	TaxRate         string          `json:"tax_rate"`
	Subtotal        string          `json:"subtotal"`
	Discount        string          `json:"discount"`
	Tax             string          `json:"tax"`
	Total           string          `json:"total"`
	DepositPct      string          `json:"deposit_pct"`
	DepositAmount   string          `json:"deposit_amount"`
	Title           *string         `json:"title,omitempty"`
	Message         *string         `json:"message,omitempty"`
	TermsConditions *string         `json:"terms_conditions,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	ValidUntil      time.Time       `json:"valid_until"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	ViewedAt        *time.Time      `json:"viewed_at,omitempty"`
	RespondedAt     *time.Time      `json:"responded_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	VendorOwnerID uuid.UUID `json:"-"`
}

type QuoteListItem struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	Number     string    `json:"number"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	ValidUntil time.Time `json:"valid_until"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuoteQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor party.Actor) (*QuoteView, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID, actor party.Actor) ([]*QuoteListItem, error)
}

type QuoteViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*QuoteView, error)
	FindByRequest(ctx context.Context, requestID uuid.UUID) ([]*QuoteListItem, error)
	RequestParties(ctx context.Context, requestID uuid.UUID) (organizerID, vendorOwnerID uuid.UUID, err error)
}

type quoteQueriesImpl struct {
	repo QuoteViewRepo
}

func NewQuoteQueries(repo QuoteViewRepo) QuoteQueries {
	return &quoteQueriesImpl{repo: repo}
}

func (q *quoteQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor party.Actor) (*QuoteView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != view.OrganizerID && actor.UserID != view.VendorOwnerID {
		return nil, errs.ErrQuoteNotFound
	}
	// draft quotes are invisible to the organizer until sent
	if view.Status == "draft" && actor.UserID == view.OrganizerID && !actor.IsAdmin() && actor.UserID != view.VendorOwnerID {
		return nil, errs.ErrQuoteNotFound
	}
	return view, nil
}

func (q *quoteQueriesImpl) ListByRequest(ctx context.Context, requestID uuid.UUID, actor party.Actor) ([]*QuoteListItem, error) {
	organizerID, vendorOwnerID, err := q.repo.RequestParties(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != organizerID && actor.UserID != vendorOwnerID {
		return nil, errs.ErrRequestNotFound
	}
	return q.repo.FindByRequest(ctx, requestID)
}
