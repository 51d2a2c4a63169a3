//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	dombooking "eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"
	domquote "eventmarket/internal/domain/quote"
	domrequest "eventmarket/internal/domain/request"
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/usecase/commands"
	"eventmarket/internal/usecase/shared"
	"eventmarket/tests/common/builder"
	"eventmarket/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// capturePublisher records topics so tests can assert which workflow events
// fired after a commit.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturePublisher) Publish(_ context.Context, topic string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
}

func (p *capturePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.topics))
	copy(out, p.topics)
	return out
}

func (p *capturePublisher) Has(topic string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.topics {
		if t == topic {
			return true
		}
	}
	return false
}

// workflowFixture wires one vendor, one organizer and the in-memory store.
// The clock starts at 2026-03-01 12:00 UTC; builder defaults place the event
// two months out.
type workflowFixture struct {
	uow *memuow.UoW
	clk *clock.MockClock
	pub *capturePublisher

	vendorID  uuid.UUID
	vendor    party.Actor
	organizer party.Actor
	admin     party.Actor
	stranger  party.Actor
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		uow:       memuow.New(),
		clk:       clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		pub:       &capturePublisher{},
		vendorID:  uuid.New(),
		vendor:    party.Actor{UserID: uuid.New(), Role: party.RoleVendor},
		organizer: party.Actor{UserID: uuid.New(), Role: party.RoleOrganizer},
		admin:     party.Actor{UserID: uuid.New(), Role: party.RoleAdmin},
		stranger:  party.Actor{UserID: uuid.New(), Role: party.RoleOrganizer},
	}
	f.uow.SeedVendor(shared.VendorSnapshot{
		ID:             f.vendorID,
		OwnerUserID:    f.vendor.UserID,
		DisplayName:    "Lens & Light Studio",
		Active:         true,
		CommissionRate: decimal.RequireFromString("0.15"),
	})
	return f
}

func (f *workflowFixture) requests() commands.RequestCommands {
	return commands.NewRequestUseCase(f.uow, f.clk, f.pub)
}

func (f *workflowFixture) quotes() commands.QuoteCommands {
	return commands.NewQuoteUseCase(f.uow, f.clk, f.pub)
}

func (f *workflowFixture) bookings() commands.BookingCommands {
	return commands.NewBookingUseCase(f.uow, f.clk, f.pub)
}

func (f *workflowFixture) payments() commands.PaymentCommands {
	return commands.NewPaymentUseCase(f.uow, f.clk, f.pub)
}

func (f *workflowFixture) cancellations() commands.CancellationCommands {
	return commands.NewCancellationUseCase(f.uow, f.clk, f.pub)
}

func (f *workflowFixture) seedPendingRequest(t *testing.T) *domrequest.BookingRequest {
	t.Helper()
	r, err := builder.NewBookingRequestBuilder().With(func(b *builder.BookingRequestBuilder) {
		b.VendorID = f.vendorID
		b.OrganizerID = f.organizer.UserID
		b.Now = f.clk.Now()
	}).BuildDomain()
	require.NoError(t, err)
	f.uow.SeedRequest(r)
	return r
}

// seedSentQuote issues a single-item 1500.00 quote (450.00 deposit at the
// default 30%) and moves the request to quoted, as SendQuote would.
func (f *workflowFixture) seedSentQuote(t *testing.T, r *domrequest.BookingRequest) *domquote.Quote {
	t.Helper()
	q, err := builder.NewQuoteBuilder().With(func(b *builder.QuoteBuilder) {
		b.RequestID = r.ID()
		b.VendorID = f.vendorID
		b.OrganizerID = f.organizer.UserID
		b.Items = []domquote.ItemParams{
			{
				Name:        "Event service package",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   money.FromInt(1500),
				DiscountPct: money.ZeroPercent(),
			},
		}
		b.Now = f.clk.Now()
	}).BuildDomain()
	require.NoError(t, err)
	require.NoError(t, q.Send(f.clk.Now()))
	f.uow.SeedQuote(q)

	require.NoError(t, r.MarkQuoted(f.clk.Now()))
	f.uow.SeedRequest(r)
	return q
}

// acceptedBooking runs the real accept flow so the request, quote and booking
// land in a mutually consistent state.
func (f *workflowFixture) acceptedBooking(t *testing.T) *dombooking.Booking {
	t.Helper()
	r := f.seedPendingRequest(t)
	q := f.seedSentQuote(t, r)

	result, err := f.quotes().AcceptQuote(context.Background(), q.ID(), f.organizer)
	require.NoError(t, err)

	b := f.uow.StoredBooking(result.BookingID)
	require.NotNil(t, b)
	return b
}
