package cancellation

import (
	"errors"
	"time"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"

	"github.com/google/uuid"
)

var (
	ErrEmptyReason = errors.New("cancellation reason is required")
)

// Cancellation is the one-to-one record behind a cancelled booking. The
// settlement split is computed exactly once at cancellation time and never
// recomputed; re-running the tier lookup later would be meaningless since
// lead time only exists at the instant of cancellation.
type Cancellation struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	cancelledBy uuid.UUID
	initiator   party.Initiator

	reason         string
	reasonCategory *string

	leadDays      int
	cancelledAt   time.Time
	refundPct     money.Percent
	refundAmount  money.Money
	penaltyAmount money.Money

	mutualAgreement bool

	notes *string

	createdAt time.Time
}

type NewParams struct {
	BookingID       uuid.UUID
	CancelledBy     uuid.UUID
	Initiator       party.Initiator
	Reason          string
	ReasonCategory  *string
	Settlement      Settlement
	MutualAgreement bool
	Notes           *string
}

func New(p NewParams, now time.Time) (*Cancellation, error) {
	if p.Reason == "" {
		return nil, ErrEmptyReason
	}
	return &Cancellation{
		id:              uuid.New(),
		bookingID:       p.BookingID,
		cancelledBy:     p.CancelledBy,
		initiator:       p.Initiator,
		reason:          p.Reason,
		reasonCategory:  p.ReasonCategory,
		leadDays:        p.Settlement.LeadDays,
		cancelledAt:     now,
		refundPct:       p.Settlement.RefundPct,
		refundAmount:    p.Settlement.RefundAmount,
		penaltyAmount:   p.Settlement.PenaltyAmount,
		mutualAgreement: p.MutualAgreement,
		notes:           p.Notes,
		createdAt:       now,
	}, nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	BookingID       uuid.UUID
	CancelledBy     uuid.UUID
	Initiator       party.Initiator
	Reason          string
	ReasonCategory  *string
	LeadDays        int
	CancelledAt     time.Time
	RefundPct       money.Percent
	RefundAmount    money.Money
	PenaltyAmount   money.Money
	MutualAgreement bool
	Notes           *string
	CreatedAt       time.Time
}

func Reconstruct(p ReconstructParams) *Cancellation {
	return &Cancellation{
		id:              p.ID,
		bookingID:       p.BookingID,
		cancelledBy:     p.CancelledBy,
		initiator:       p.Initiator,
		reason:          p.Reason,
		reasonCategory:  p.ReasonCategory,
		leadDays:        p.LeadDays,
		cancelledAt:     p.CancelledAt,
		refundPct:       p.RefundPct,
		refundAmount:    p.RefundAmount,
		penaltyAmount:   p.PenaltyAmount,
		mutualAgreement: p.MutualAgreement,
		notes:           p.Notes,
		createdAt:       p.CreatedAt,
	}
}

func (c *Cancellation) ID() uuid.UUID               { return c.id }
func (c *Cancellation) BookingID() uuid.UUID        { return c.bookingID }
func (c *Cancellation) CancelledBy() uuid.UUID      { return c.cancelledBy }
func (c *Cancellation) Initiator() party.Initiator  { return c.initiator }
func (c *Cancellation) Reason() string              { return c.reason }
func (c *Cancellation) ReasonCategory() *string     { return c.reasonCategory }
func (c *Cancellation) LeadDays() int               { return c.leadDays }
func (c *Cancellation) CancelledAt() time.Time      { return c.cancelledAt }
func (c *Cancellation) RefundPct() money.Percent    { return c.refundPct }
func (c *Cancellation) RefundAmount() money.Money   { return c.refundAmount }
func (c *Cancellation) PenaltyAmount() money.Money  { return c.penaltyAmount }
func (c *Cancellation) MutualAgreement() bool       { return c.mutualAgreement }
func (c *Cancellation) Notes() *string              { return c.notes }
func (c *Cancellation) CreatedAt() time.Time        { return c.createdAt }
