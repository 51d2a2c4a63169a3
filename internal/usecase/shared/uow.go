package shared

import (
	"context"
	"fmt"
	"time"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Requests() RequestRepository
	Quotes() QuoteRepository
	Bookings() BookingRepository
	Payments() PaymentRepository
	Cancellations() CancellationRepository
	Sequences() SequenceIssuer
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	RequestByID(ctx context.Context, id uuid.UUID) (*RequestSnapshot, error)
	QuoteByID(ctx context.Context, id uuid.UUID) (*QuoteSnapshot, error)
	HasOpenQuote(ctx context.Context, requestID uuid.UUID) (bool, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	VendorByID(ctx context.Context, id uuid.UUID) (*VendorSnapshot, error)
}

// RequestRepository is the write side of booking requests. Status moves go
// through compare-and-set methods that report the matched row count; a zero
// count means another writer resolved the request first.
type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *request.BookingRequest) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*request.BookingRequest, error)
	UpdateDetails(ctx context.Context, tx db.DBTX, r *request.BookingRequest) error
	MarkViewed(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error
	// MarkQuoted: pending|quoted -> quoted, stamping responded_at on first quote
	MarkQuoted(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error)
	TransitionStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, from []request.Status, to request.Status, now time.Time) (int64, error)
	// ExpireStale sweeps every open request past its expiry window
	ExpireStale(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error)
}

type QuoteRepository interface {
	Create(ctx context.Context, tx db.DBTX, q *quote.Quote) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*quote.Quote, error)
	// MarkSent: draft -> sent
	MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error)
	// MarkViewed: sent -> viewed; zero rows is not an error (idempotent)
	MarkViewed(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error
	// Accept: sent|viewed -> accepted
	Accept(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error)
	// Reject: sent|viewed -> rejected with the organizer's reason
	Reject(ctx context.Context, tx db.DBTX, id uuid.UUID, reason *string, now time.Time) (int64, error)
	// ExpireSiblings closes every other open quote on the request
	ExpireSiblings(ctx context.Context, tx db.DBTX, requestID, keepQuoteID uuid.UUID, now time.Time) error
	ExpireOpenByRequestIDs(ctx context.Context, tx db.DBTX, requestIDs []uuid.UUID, now time.Time) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateDetails(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	// ApplyPayment adds to amount_paid and re-derives payment_status in one
	// guarded statement; zero rows means overpayment or a cancelled booking.
	ApplyPayment(ctx context.Context, tx db.DBTX, id uuid.UUID, amount money.Money, now time.Time) (int64, error)
	// ApplyRefund subtracts from amount_paid; zero rows means the refund
	// exceeds the paid balance.
	ApplyRefund(ctx context.Context, tx db.DBTX, id uuid.UUID, amount money.Money, now time.Time) (int64, error)
	// Complete: confirmed -> completed
	Complete(ctx context.Context, tx db.DBTX, id uuid.UUID, notes *string, now time.Time) (int64, error)
	// Cancel: confirmed -> cancelled, locking the row for settlement
	Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *booking.Payment) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Payment, error)
	// FindLatestCharge returns the most recent succeeded non-refund payment,
	// used to anchor settlement refunds.
	FindLatestCharge(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (*booking.Payment, error)
}

type CancellationRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *cancellation.Cancellation) (uuid.UUID, error)
}

// SequenceKind selects a per-year counter and its display prefix.
type SequenceKind string

const (
	SequenceQuote   SequenceKind = "quote"
	SequenceBooking SequenceKind = "booking"
	SequencePayment SequenceKind = "payment"
)

// Prefix is the leading letter of issued numbers, e.g. Q-2026-00042.
func (k SequenceKind) Prefix() string {
	switch k {
	case SequenceQuote:
		return "Q"
	case SequenceBooking:
		return "B"
	case SequencePayment:
		return "P"
	default:
		return "X"
	}
}

// SequenceIssuer hands out gapless-enough, strictly increasing display
// numbers. Implementations must be atomic across service instances; an
// in-process counter is never acceptable.
type SequenceIssuer interface {
	Next(ctx context.Context, tx db.DBTX, kind SequenceKind, year int) (string, error)
}

// FormatSequence renders the canonical display number.
func FormatSequence(kind SequenceKind, year int, value int64) string {
	return fmt.Sprintf("%s-%d-%05d", kind.Prefix(), year, value)
}
