package booking

import (
	"errors"
	"time"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotCompletable    = errors.New("booking cannot be completed in its current status")
	ErrNotCancellable    = errors.New("booking cannot be cancelled in its current status")
	ErrNotPayable        = errors.New("booking cannot accept payments")
	ErrNotEditable       = errors.New("booking details can no longer be updated")
	ErrEventNotFinished  = errors.New("cannot complete booking before the event has ended")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrOverpayment       = errors.New("payment amount exceeds amount due")
	ErrRefundExceedsPaid = errors.New("refund amount exceeds amount paid")
)

// Booking is the confirmed transaction created exactly once per accepted
// quote. Event details, money and the vendor's commission rate are snapshots
// taken at acceptance time; later vendor or quote edits never flow back in.
type Booking struct {
	id          uuid.UUID
	quoteID     uuid.UUID
	requestID   uuid.UUID
	eventID     uuid.UUID
	vendorID    uuid.UUID
	organizerID uuid.UUID

	number        string
	status        Status
	paymentStatus PaymentStatus

	serviceTitle string
	window       request.EventWindow
	venueName    *string
	venueAddress *string
	guestCount   *int

	currency      string
	totalAmount   money.Money
	depositAmount money.Money
	amountPaid    money.Money

	commissionRate   decimal.Decimal
	commissionAmount money.Money

	policyText     *string
	policySchedule string

	notes           *string
	completionNotes *string

	completedAt *time.Time
	cancelledAt *time.Time

	createdAt time.Time
	updatedAt time.Time
}

type NewFromQuoteParams struct {
	Number string

	// CommissionRate is the vendor's current fractional rate (e.g. 0.15),
	// frozen into the booking.
	CommissionRate decimal.Decimal

	// PolicyText and PolicySchedule snapshot the vendor's cancellation
	// policy as it stands at acceptance.
	PolicyText     *string
	PolicySchedule string
}

// NewFromQuote snapshots an accepted quote and its request into a confirmed
// booking with an empty ledger.
func NewFromQuote(q *quote.Quote, r *request.BookingRequest, p NewFromQuoteParams, now time.Time) *Booking {
	title := r.Title()
	if q.Title() != nil && *q.Title() != "" {
		title = *q.Title()
	}

	return &Booking{
		id:               uuid.New(),
		quoteID:          q.ID(),
		requestID:        r.ID(),
		eventID:          r.EventID(),
		vendorID:         q.VendorID(),
		organizerID:      r.OrganizerID(),
		number:           p.Number,
		status:           StatusConfirmed,
		paymentStatus:    PaymentPending,
		serviceTitle:     title,
		window:           r.Window(),
		venueName:        r.VenueName(),
		venueAddress:     r.VenueAddress(),
		guestCount:       r.GuestCount(),
		currency:         q.Currency(),
		totalAmount:      q.Total(),
		depositAmount:    q.DepositAmount(),
		amountPaid:       money.Zero(),
		commissionRate:   p.CommissionRate,
		commissionAmount: q.Total().MulRate(p.CommissionRate),
		policyText:       p.PolicyText,
		policySchedule:   p.PolicySchedule,
		createdAt:        now,
		updatedAt:        now,
	}
}

type ReconstructParams struct {
	ID               uuid.UUID
	QuoteID          uuid.UUID
	RequestID        uuid.UUID
	EventID          uuid.UUID
	VendorID         uuid.UUID
	OrganizerID      uuid.UUID
	Number           string
	Status           Status
	PaymentStatus    PaymentStatus
	ServiceTitle     string
	Window           request.EventWindow
	VenueName        *string
	VenueAddress     *string
	GuestCount       *int
	Currency         string
	TotalAmount      money.Money
	DepositAmount    money.Money
	AmountPaid       money.Money
	CommissionRate   decimal.Decimal
	CommissionAmount money.Money
	PolicyText       *string
	PolicySchedule   string
	Notes            *string
	CompletionNotes  *string
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:               p.ID,
		quoteID:          p.QuoteID,
		requestID:        p.RequestID,
		eventID:          p.EventID,
		vendorID:         p.VendorID,
		organizerID:      p.OrganizerID,
		number:           p.Number,
		status:           p.Status,
		paymentStatus:    p.PaymentStatus,
		serviceTitle:     p.ServiceTitle,
		window:           p.Window,
		venueName:        p.VenueName,
		venueAddress:     p.VenueAddress,
		guestCount:       p.GuestCount,
		currency:         p.Currency,
		totalAmount:      p.TotalAmount,
		depositAmount:    p.DepositAmount,
		amountPaid:       p.AmountPaid,
		commissionRate:   p.CommissionRate,
		commissionAmount: p.CommissionAmount,
		policyText:       p.PolicyText,
		policySchedule:   p.PolicySchedule,
		notes:            p.Notes,
		completionNotes:  p.CompletionNotes,
		completedAt:      p.CompletedAt,
		cancelledAt:      p.CancelledAt,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) QuoteID() uuid.UUID               { return b.quoteID }
func (b *Booking) RequestID() uuid.UUID             { return b.requestID }
func (b *Booking) EventID() uuid.UUID               { return b.eventID }
func (b *Booking) VendorID() uuid.UUID              { return b.vendorID }
func (b *Booking) OrganizerID() uuid.UUID           { return b.organizerID }
func (b *Booking) Number() string                   { return b.number }
func (b *Booking) Status() Status                   { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus     { return b.paymentStatus }
func (b *Booking) ServiceTitle() string             { return b.serviceTitle }
func (b *Booking) Window() request.EventWindow      { return b.window }
func (b *Booking) VenueName() *string               { return b.venueName }
func (b *Booking) VenueAddress() *string            { return b.venueAddress }
func (b *Booking) GuestCount() *int                 { return b.guestCount }
func (b *Booking) Currency() string                 { return b.currency }
func (b *Booking) TotalAmount() money.Money         { return b.totalAmount }
func (b *Booking) DepositAmount() money.Money       { return b.depositAmount }
func (b *Booking) AmountPaid() money.Money          { return b.amountPaid }
func (b *Booking) CommissionRate() decimal.Decimal  { return b.commissionRate }
func (b *Booking) CommissionAmount() money.Money    { return b.commissionAmount }
func (b *Booking) PolicyText() *string              { return b.policyText }
func (b *Booking) PolicySchedule() string           { return b.policySchedule }
func (b *Booking) Notes() *string                   { return b.notes }
func (b *Booking) CompletionNotes() *string         { return b.completionNotes }
func (b *Booking) CompletedAt() *time.Time          { return b.completedAt }
func (b *Booking) CancelledAt() *time.Time          { return b.cancelledAt }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }

// AmountDue is always derived, never stored.
func (b *Booking) AmountDue() money.Money {
	return b.totalAmount.Sub(b.amountPaid)
}

// VendorPayout is the vendor's share after platform commission.
func (b *Booking) VendorPayout() money.Money {
	return b.totalAmount.Sub(b.commissionAmount)
}

// IsInProgress is a time-derived view, not a stored transition: a confirmed
// booking whose event has started.
func (b *Booking) IsInProgress(now time.Time) bool {
	return b.status == StatusConfirmed && !now.Before(b.window.Start())
}

// CanUpdateDetails permits organizer edits only before the event starts.
func (b *Booking) CanUpdateDetails(now time.Time) bool {
	return b.status == StatusConfirmed && now.Before(b.window.Start())
}

type UpdateDetailsParams struct {
	VenueName    *string
	VenueAddress *string
	GuestCount   *int
	Notes        *string
}

func (b *Booking) UpdateDetails(p UpdateDetailsParams, now time.Time) error {
	if !b.CanUpdateDetails(now) {
		return ErrNotEditable
	}
	if p.VenueName != nil {
		b.venueName = p.VenueName
	}
	if p.VenueAddress != nil {
		b.venueAddress = p.VenueAddress
	}
	if p.GuestCount != nil {
		b.guestCount = p.GuestCount
	}
	if p.Notes != nil {
		b.notes = p.Notes
	}
	b.updatedAt = now
	return nil
}

// ApplyPayment adds a charge to the ledger. Overpayment is rejected rather
// than clamped so financial errors surface immediately.
func (b *Booking) ApplyPayment(amount money.Money, now time.Time) error {
	if b.status == StatusCancelled {
		return ErrNotPayable
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(b.AmountDue()) {
		return ErrOverpayment
	}
	b.amountPaid = b.amountPaid.Add(amount)
	b.paymentStatus = DerivePaymentStatus(b.amountPaid, b.depositAmount, b.totalAmount)
	b.updatedAt = now
	return nil
}

// ApplyRefund removes a previously paid amount. A refund that returns the
// balance to zero marks the ledger refunded.
func (b *Booking) ApplyRefund(amount money.Money, now time.Time) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(b.amountPaid) {
		return ErrRefundExceedsPaid
	}
	b.amountPaid = b.amountPaid.Sub(amount)
	if b.amountPaid.IsZero() {
		b.paymentStatus = PaymentRefunded
	} else {
		b.paymentStatus = DerivePaymentStatus(b.amountPaid, b.depositAmount, b.totalAmount)
	}
	b.updatedAt = now
	return nil
}

// Complete is vendor-driven and only valid once the event has ended.
func (b *Booking) Complete(notes *string, now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotCompletable
	}
	if !b.window.FinishedBy(now) {
		return ErrEventNotFinished
	}
	b.status = StatusCompleted
	b.completionNotes = notes
	b.completedAt = &now
	b.updatedAt = now
	return nil
}

// Cancel transitions confirmed to cancelled. The refund/penalty settlement
// is computed by the cancellation policy, not here.
func (b *Booking) Cancel(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotCancellable
	}
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}
