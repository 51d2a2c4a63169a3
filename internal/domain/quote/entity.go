package quote

import (
	"errors"
	"time"

	"eventmarket/internal/domain/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotSendable     = errors.New("quote is not in draft status")
	ErrNotAcceptable   = errors.New("quote is not available for acceptance")
	ErrNotRejectable   = errors.New("quote is not available for rejection")
	ErrNotRevisable    = errors.New("only rejected quotes can be revised")
	ErrExpired         = errors.New("quote has expired")
	ErrAlreadyTerminal = errors.New("quote already resolved")
	ErrInvalidValidity = errors.New("validity days must be positive")
)

// DefaultValidityDays is applied when the vendor gives no explicit validity.
const DefaultValidityDays = 30

// DefaultDepositPct is applied when the vendor gives no explicit deposit.
const DefaultDepositPct = 30

// Quote is a vendor's priced offer against a booking request. Revisions form
// a chain via previousQuoteID; version counts up from 1.
type Quote struct {
	id          uuid.UUID
	requestID   uuid.UUID
	vendorID    uuid.UUID
	organizerID uuid.UUID

	number  string
	status  Status
	version int

	previousQuoteID *uuid.UUID

	items []Item

	currency string
	taxRate  decimal.Decimal

	subtotal      money.Money
	discount      money.Money
	tax           money.Money
	total         money.Money
	depositPct    money.Percent
	depositAmount money.Money

	title           *string
	message         *string
	termsConditions *string
	notes           *string

	validUntil time.Time

	sentAt      *time.Time
	viewedAt    *time.Time
	respondedAt *time.Time

	rejectionReason *string

	createdAt time.Time
	updatedAt time.Time
}

type NewQuoteParams struct {
	RequestID   uuid.UUID
	VendorID    uuid.UUID
	OrganizerID uuid.UUID
	Number      string

	Items    []Item
	Currency string
	TaxRate  decimal.Decimal
	Discount money.Money

	// DepositPct nil means DefaultDepositPct.
	DepositPct *money.Percent

	// ValidityDays nil means DefaultValidityDays.
	ValidityDays *int

	Title           *string
	Message         *string
	TermsConditions *string
	Notes           *string
}

// NewQuote creates a draft quote with its pricing fully derived from the
// item list.
func NewQuote(p NewQuoteParams, now time.Time) (*Quote, error) {
	validityDays := DefaultValidityDays
	if p.ValidityDays != nil {
		if *p.ValidityDays <= 0 {
			return nil, ErrInvalidValidity
		}
		validityDays = *p.ValidityDays
	}

	depositPct, err := money.NewPercentFromInt(DefaultDepositPct)
	if err != nil {
		return nil, err
	}
	if p.DepositPct != nil {
		depositPct = *p.DepositPct
	}

	breakdown, err := ComputePricing(p.Items, p.Discount, p.TaxRate, depositPct)
	if err != nil {
		return nil, err
	}

	return &Quote{
		id:              uuid.New(),
		requestID:       p.RequestID,
		vendorID:        p.VendorID,
		organizerID:     p.OrganizerID,
		number:          p.Number,
		status:          StatusDraft,
		version:         1,
		items:           p.Items,
		currency:        p.Currency,
		taxRate:         p.TaxRate,
		subtotal:        breakdown.Subtotal,
		discount:        breakdown.Discount,
		tax:             breakdown.Tax,
		total:           breakdown.Total,
		depositPct:      depositPct,
		depositAmount:   breakdown.DepositAmount,
		title:           p.Title,
		message:         p.Message,
		termsConditions: p.TermsConditions,
		notes:           p.Notes,
		validUntil:      now.AddDate(0, 0, validityDays),
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// NewRevision creates a fresh draft superseding a rejected quote. The new
// quote carries its own number, items and pricing; only lineage fields come
// from the predecessor.
func (q *Quote) NewRevision(p NewQuoteParams, now time.Time) (*Quote, error) {
	if q.status != StatusRejected {
		return nil, ErrNotRevisable
	}
	rev, err := NewQuote(p, now)
	if err != nil {
		return nil, err
	}
	prev := q.id
	rev.previousQuoteID = &prev
	rev.version = q.version + 1
	return rev, nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	RequestID       uuid.UUID
	VendorID        uuid.UUID
	OrganizerID     uuid.UUID
	Number          string
	Status          Status
	Version         int
	PreviousQuoteID *uuid.UUID
	Items           []Item
	Currency        string
	TaxRate         decimal.Decimal
	Subtotal        money.Money
	Discount        money.Money
	Tax             money.Money
	Total           money.Money
	DepositPct      money.Percent
	DepositAmount   money.Money
	Title           *string
	Message         *string
	TermsConditions *string
	Notes           *string
	ValidUntil      time.Time
	SentAt          *time.Time
	ViewedAt        *time.Time
	RespondedAt     *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Reconstruct(p ReconstructParams) *Quote {
	return &Quote{
		id:              p.ID,
		requestID:       p.RequestID,
		vendorID:        p.VendorID,
		organizerID:     p.OrganizerID,
		number:          p.Number,
		status:          p.Status,
		version:         p.Version,
		previousQuoteID: p.PreviousQuoteID,
		items:           p.Items,
		currency:        p.Currency,
		taxRate:         p.TaxRate,
		subtotal:        p.Subtotal,
		discount:        p.Discount,
		tax:             p.Tax,
		total:           p.Total,
		depositPct:      p.DepositPct,
		depositAmount:   p.DepositAmount,
		title:           p.Title,
		message:         p.Message,
		termsConditions: p.TermsConditions,
		notes:           p.Notes,
		validUntil:      p.ValidUntil,
		sentAt:          p.SentAt,
		viewedAt:        p.ViewedAt,
		respondedAt:     p.RespondedAt,
		rejectionReason: p.RejectionReason,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

func (q *Quote) ID() uuid.UUID              { return q.id }
func (q *Quote) RequestID() uuid.UUID       { return q.requestID }
func (q *Quote) VendorID() uuid.UUID        { return q.vendorID }
func (q *Quote) OrganizerID() uuid.UUID     { return q.organizerID }
func (q *Quote) Number() string             { return q.number }
func (q *Quote) Status() Status             { return q.status }
func (q *Quote) Version() int               { return q.version }
func (q *Quote) PreviousQuoteID() *uuid.UUID {
	return q.previousQuoteID
}
func (q *Quote) Items() []Item              { return q.items }
func (q *Quote) Currency() string           { return q.currency }
func (q *Quote) TaxRate() decimal.Decimal   { return q.taxRate }
func (q *Quote) Subtotal() money.Money      { return q.subtotal }
func (q *Quote) Discount() money.Money      { return q.discount }
func (q *Quote) Tax() money.Money           { return q.tax }
func (q *Quote) Total() money.Money         { return q.total }
func (q *Quote) DepositPct() money.Percent  { return q.depositPct }
func (q *Quote) DepositAmount() money.Money { return q.depositAmount }
func (q *Quote) Title() *string             { return q.title }
func (q *Quote) Message() *string           { return q.message }
func (q *Quote) TermsConditions() *string   { return q.termsConditions }
func (q *Quote) Notes() *string             { return q.notes }
func (q *Quote) ValidUntil() time.Time      { return q.validUntil }
func (q *Quote) SentAt() *time.Time         { return q.sentAt }
func (q *Quote) ViewedAt() *time.Time       { return q.viewedAt }
func (q *Quote) RespondedAt() *time.Time    { return q.respondedAt }
func (q *Quote) RejectionReason() *string   { return q.rejectionReason }
func (q *Quote) CreatedAt() time.Time       { return q.createdAt }
func (q *Quote) UpdatedAt() time.Time       { return q.updatedAt }

// IsExpired reports whether the validity window has lapsed, independent of
// the persisted status.
func (q *Quote) IsExpired(now time.Time) bool {
	return now.After(q.validUntil)
}

func (q *Quote) Send(now time.Time) error {
	if q.status != StatusDraft {
		return ErrNotSendable
	}
	q.status = StatusSent
	q.sentAt = &now
	q.updatedAt = now
	return nil
}

// MarkViewed records the organizer's first view. Repeat views and views of
// already-resolved quotes are no-ops.
func (q *Quote) MarkViewed(now time.Time) {
	if q.status != StatusSent {
		return
	}
	q.status = StatusViewed
	q.viewedAt = &now
	q.updatedAt = now
}

// CanAccept validates acceptance preconditions without mutating the quote.
func (q *Quote) CanAccept(now time.Time) error {
	if !q.status.Acceptable() {
		return ErrNotAcceptable
	}
	if q.IsExpired(now) {
		return ErrExpired
	}
	return nil
}

func (q *Quote) Accept(now time.Time) error {
	if err := q.CanAccept(now); err != nil {
		return err
	}
	q.status = StatusAccepted
	q.respondedAt = &now
	q.updatedAt = now
	return nil
}

func (q *Quote) Reject(reason *string, now time.Time) error {
	if !q.status.Acceptable() {
		return ErrNotRejectable
	}
	q.status = StatusRejected
	q.rejectionReason = reason
	q.respondedAt = &now
	q.updatedAt = now
	return nil
}

// Expire transitions any open quote; terminal quotes are left untouched.
func (q *Quote) Expire(now time.Time) error {
	if q.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	q.status = StatusExpired
	q.updatedAt = now
	return nil
}
