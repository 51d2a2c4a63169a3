//go:build unit || e2e

// Package memuow is an in-memory shared.UnitOfWork for exercising command
// usecases without Postgres. Repositories reproduce the SQL compare-and-set
// contract: a guarded transition that no longer matches reports zero affected
// rows rather than an error, and FindByID hands back a detached copy the way
// a row scan would.
package memuow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type UoW struct {
	mu sync.Mutex

	requests      map[uuid.UUID]*request.BookingRequest
	quotes        map[uuid.UUID]*quote.Quote
	bookings      map[uuid.UUID]*booking.Booking
	payments      map[uuid.UUID]*booking.Payment
	cancellations map[uuid.UUID]*cancellation.Cancellation
	vendors       map[uuid.UUID]shared.VendorSnapshot
	counters      map[string]int64
}

func New() *UoW {
	return &UoW{
		requests:      make(map[uuid.UUID]*request.BookingRequest),
		quotes:        make(map[uuid.UUID]*quote.Quote),
		bookings:      make(map[uuid.UUID]*booking.Booking),
		payments:      make(map[uuid.UUID]*booking.Payment),
		cancellations: make(map[uuid.UUID]*cancellation.Cancellation),
		vendors:       make(map[uuid.UUID]shared.VendorSnapshot),
		counters:      make(map[string]int64),
	}
}

var _ shared.UnitOfWork = (*UoW)(nil)

// Within serializes transactions under a single lock and restores the prior
// state when fn fails, mirroring a rollback.
func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	snap := u.snapshot()
	if err := fn(ctx, &memTx{u: u}); err != nil {
		u.restore(snap)
		return err
	}
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, nil)
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, nil)
}

func (u *UoW) CommandReads() shared.CommandReads {
	return lockedReads{u: u}
}

type memState struct {
	requests      map[uuid.UUID]*request.BookingRequest
	quotes        map[uuid.UUID]*quote.Quote
	bookings      map[uuid.UUID]*booking.Booking
	payments      map[uuid.UUID]*booking.Payment
	cancellations map[uuid.UUID]*cancellation.Cancellation
	counters      map[string]int64
}

func (u *UoW) snapshot() memState {
	s := memState{
		requests:      make(map[uuid.UUID]*request.BookingRequest, len(u.requests)),
		quotes:        make(map[uuid.UUID]*quote.Quote, len(u.quotes)),
		bookings:      make(map[uuid.UUID]*booking.Booking, len(u.bookings)),
		payments:      make(map[uuid.UUID]*booking.Payment, len(u.payments)),
		cancellations: make(map[uuid.UUID]*cancellation.Cancellation, len(u.cancellations)),
		counters:      make(map[string]int64, len(u.counters)),
	}
	for id, r := range u.requests {
		s.requests[id] = cloneRequest(r)
	}
	for id, q := range u.quotes {
		s.quotes[id] = cloneQuote(q)
	}
	for id, b := range u.bookings {
		s.bookings[id] = cloneBooking(b)
	}
	for id, p := range u.payments {
		s.payments[id] = clonePayment(p)
	}
	for id, c := range u.cancellations {
		s.cancellations[id] = cloneCancellation(c)
	}
	for k, v := range u.counters {
		s.counters[k] = v
	}
	return s
}

func (u *UoW) restore(s memState) {
	u.requests = s.requests
	u.quotes = s.quotes
	u.bookings = s.bookings
	u.payments = s.payments
	u.cancellations = s.cancellations
	u.counters = s.counters
}

type memTx struct {
	u *UoW
}

func (t *memTx) Requests() shared.RequestRepository           { return requestRepo{u: t.u} }
func (t *memTx) Quotes() shared.QuoteRepository               { return quoteRepo{u: t.u} }
func (t *memTx) Bookings() shared.BookingRepository           { return bookingRepo{u: t.u} }
func (t *memTx) Payments() shared.PaymentRepository           { return paymentRepo{u: t.u} }
func (t *memTx) Cancellations() shared.CancellationRepository { return cancellationRepo{u: t.u} }
func (t *memTx) Sequences() shared.SequenceIssuer             { return sequenceIssuer{u: t.u} }
func (t *memTx) Reads() shared.CommandReads                   { return reads{u: t.u} }
func (t *memTx) DB() db.DBTX                                  { return nil }

func notFound(msg string) error {
	return infra.NewRepoErr(infra.KindNotFound, msg)
}

type requestRepo struct {
	u *UoW
}

func (r requestRepo) Create(_ context.Context, _ db.DBTX, req *request.BookingRequest) (uuid.UUID, error) {
	r.u.requests[req.ID()] = cloneRequest(req)
	return req.ID(), nil
}

func (r requestRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*request.BookingRequest, error) {
	stored, ok := r.u.requests[id]
	if !ok {
		return nil, notFound("booking request not found")
	}
	return cloneRequest(stored), nil
}

func (r requestRepo) UpdateDetails(_ context.Context, _ db.DBTX, req *request.BookingRequest) error {
	if _, ok := r.u.requests[req.ID()]; !ok {
		return notFound("booking request not found")
	}
	r.u.requests[req.ID()] = cloneRequest(req)
	return nil
}

func (r requestRepo) MarkViewed(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) error {
	stored, ok := r.u.requests[id]
	if !ok {
		return notFound("booking request not found")
	}
	stored.MarkViewedByVendor(now)
	return nil
}

func (r requestRepo) MarkQuoted(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	stored, ok := r.u.requests[id]
	if !ok {
		return 0, nil
	}
	if err := stored.MarkQuoted(now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r requestRepo) TransitionStatus(_ context.Context, _ db.DBTX, id uuid.UUID, from []request.Status, to request.Status, now time.Time) (int64, error) {
	stored, ok := r.u.requests[id]
	if !ok {
		return 0, nil
	}
	matched := false
	for _, s := range from {
		if stored.Status() == s {
			matched = true
			break
		}
	}
	if !matched {
		return 0, nil
	}

	var err error
	switch to {
	case request.StatusAccepted:
		err = stored.Accept(now)
	case request.StatusCancelled:
		err = stored.Cancel(now)
	case request.StatusExpired:
		err = stored.Expire(now)
	default:
		return 0, nil
	}
	if err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r requestRepo) ExpireStale(_ context.Context, _ db.DBTX, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, stored := range r.u.requests {
		if stored.Status().Sweepable() && stored.IsExpired(now) {
			if err := stored.Expire(now); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

type quoteRepo struct {
	u *UoW
}

func (r quoteRepo) Create(_ context.Context, _ db.DBTX, q *quote.Quote) (uuid.UUID, error) {
	r.u.quotes[q.ID()] = cloneQuote(q)
	return q.ID(), nil
}

func (r quoteRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*quote.Quote, error) {
	stored, ok := r.u.quotes[id]
	if !ok {
		return nil, notFound("quote not found")
	}
	return cloneQuote(stored), nil
}

func (r quoteRepo) MarkSent(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	stored, ok := r.u.quotes[id]
	if !ok {
		return 0, nil
	}
	if err := stored.Send(now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r quoteRepo) MarkViewed(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) error {
	stored, ok := r.u.quotes[id]
	if !ok {
		return notFound("quote not found")
	}
	stored.MarkViewed(now)
	return nil
}

func (r quoteRepo) Accept(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	stored, ok := r.u.quotes[id]
	if !ok {
		return 0, nil
	}
	if err := stored.Accept(now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r quoteRepo) Reject(_ context.Context, _ db.DBTX, id uuid.UUID, reason *string, now time.Time) (int64, error) {
	stored, ok := r.u.quotes[id]
	if !ok {
		return 0, nil
	}
	if err := stored.Reject(reason, now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r quoteRepo) ExpireSiblings(_ context.Context, _ db.DBTX, requestID, keepQuoteID uuid.UUID, now time.Time) error {
	for id, stored := range r.u.quotes {
		if id == keepQuoteID || stored.RequestID() != requestID {
			continue
		}
		if stored.Status().Open() {
			_ = stored.Expire(now)
		}
	}
	return nil
}

func (r quoteRepo) ExpireOpenByRequestIDs(_ context.Context, _ db.DBTX, requestIDs []uuid.UUID, now time.Time) (int64, error) {
	members := make(map[uuid.UUID]bool, len(requestIDs))
	for _, id := range requestIDs {
		members[id] = true
	}
	var count int64
	for _, stored := range r.u.quotes {
		if members[stored.RequestID()] && stored.Status().Open() {
			if err := stored.Expire(now); err == nil {
				count++
			}
		}
	}
	return count, nil
}

type bookingRepo struct {
	u *UoW
}

func (r bookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.u.bookings[b.ID()] = cloneBooking(b)
	return b.ID(), nil
}

func (r bookingRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	stored, ok := r.u.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return cloneBooking(stored), nil
}

func (r bookingRepo) UpdateDetails(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if _, ok := r.u.bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	r.u.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r bookingRepo) ApplyPayment(_ context.Context, _ db.DBTX, id uuid.UUID, amount money.Money, now time.Time) (int64, error) {
	stored, ok := r.u.bookings[id]
	if !ok {
		return 0, nil
	}
	if err := stored.ApplyPayment(amount, now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r bookingRepo) ApplyRefund(_ context.Context, _ db.DBTX, id uuid.UUID, amount money.Money, now time.Time) (int64, error) {
	stored, ok := r.u.bookings[id]
	if !ok {
		return 0, nil
	}
	if err := stored.ApplyRefund(amount, now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r bookingRepo) Complete(_ context.Context, _ db.DBTX, id uuid.UUID, notes *string, now time.Time) (int64, error) {
	stored, ok := r.u.bookings[id]
	if !ok {
		return 0, nil
	}
	if err := stored.Complete(notes, now); err != nil {
		return 0, nil
	}
	return 1, nil
}

func (r bookingRepo) Cancel(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	stored, ok := r.u.bookings[id]
	if !ok {
		return 0, nil
	}
	if err := stored.Cancel(now); err != nil {
		return 0, nil
	}
	return 1, nil
}

type paymentRepo struct {
	u *UoW
}

func (r paymentRepo) Create(_ context.Context, _ db.DBTX, p *booking.Payment) (uuid.UUID, error) {
	r.u.payments[p.ID()] = clonePayment(p)
	return p.ID(), nil
}

func (r paymentRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Payment, error) {
	stored, ok := r.u.payments[id]
	if !ok {
		return nil, notFound("payment not found")
	}
	return clonePayment(stored), nil
}

func (r paymentRepo) FindLatestCharge(_ context.Context, _ db.DBTX, bookingID uuid.UUID) (*booking.Payment, error) {
	var latest *booking.Payment
	for _, stored := range r.u.payments {
		if stored.BookingID() != bookingID || stored.IsRefund() || stored.TxStatus() != booking.TxSucceeded {
			continue
		}
		if latest == nil || stored.ProcessedAt().After(latest.ProcessedAt()) {
			latest = stored
		}
	}
	if latest == nil {
		return nil, notFound("payment not found")
	}
	return clonePayment(latest), nil
}

type cancellationRepo struct {
	u *UoW
}

func (r cancellationRepo) Create(_ context.Context, _ db.DBTX, c *cancellation.Cancellation) (uuid.UUID, error) {
	for _, stored := range r.u.cancellations {
		if stored.BookingID() == c.BookingID() {
			return uuid.Nil, infra.NewRepoErr(infra.KindDuplicateKey, "cancellation already recorded for booking")
		}
	}
	r.u.cancellations[c.ID()] = cloneCancellation(c)
	return c.ID(), nil
}

type sequenceIssuer struct {
	u *UoW
}

func (s sequenceIssuer) Next(_ context.Context, _ db.DBTX, kind shared.SequenceKind, year int) (string, error) {
	key := fmt.Sprintf("%s:%d", kind, year)
	s.u.counters[key]++
	return shared.FormatSequence(kind, year, s.u.counters[key]), nil
}

// reads serves snapshots without taking the lock; it only runs inside Within.
type reads struct {
	u *UoW
}

var _ shared.CommandReads = reads{}

func (r reads) RequestByID(_ context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	stored, ok := r.u.requests[id]
	if !ok {
		return nil, notFound("booking request not found")
	}
	return &shared.RequestSnapshot{
		ID:          stored.ID(),
		EventID:     stored.EventID(),
		VendorID:    stored.VendorID(),
		OrganizerID: stored.OrganizerID(),
		Status:      stored.Status(),
		Currency:    stored.Currency(),
		EventStart:  stored.Window().Start(),
		EventEnd:    stored.Window().End(),
		ExpiresAt:   stored.ExpiresAt(),
	}, nil
}

func (r reads) QuoteByID(_ context.Context, id uuid.UUID) (*shared.QuoteSnapshot, error) {
	stored, ok := r.u.quotes[id]
	if !ok {
		return nil, notFound("quote not found")
	}
	return &shared.QuoteSnapshot{
		ID:          stored.ID(),
		RequestID:   stored.RequestID(),
		VendorID:    stored.VendorID(),
		OrganizerID: stored.OrganizerID(),
		Status:      stored.Status(),
		Version:     stored.Version(),
		Currency:    stored.Currency(),
		Total:       stored.Total(),
		Deposit:     stored.DepositAmount(),
		ValidUntil:  stored.ValidUntil(),
	}, nil
}

func (r reads) HasOpenQuote(_ context.Context, requestID uuid.UUID) (bool, error) {
	for _, stored := range r.u.quotes {
		if stored.RequestID() == requestID && stored.Status().Open() {
			return true, nil
		}
	}
	return false, nil
}

func (r reads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	stored, ok := r.u.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return &shared.BookingSnapshot{
		ID:             stored.ID(),
		QuoteID:        stored.QuoteID(),
		RequestID:      stored.RequestID(),
		VendorID:       stored.VendorID(),
		OrganizerID:    stored.OrganizerID(),
		Status:         stored.Status(),
		PaymentStatus:  stored.PaymentStatus(),
		Currency:       stored.Currency(),
		EventStart:     stored.Window().Start(),
		EventEnd:       stored.Window().End(),
		TotalAmount:    stored.TotalAmount(),
		DepositAmount:  stored.DepositAmount(),
		AmountPaid:     stored.AmountPaid(),
		PolicySchedule: stored.PolicySchedule(),
	}, nil
}

func (r reads) PaymentByID(_ context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	stored, ok := r.u.payments[id]
	if !ok {
		return nil, notFound("payment not found")
	}
	return &shared.PaymentSnapshot{
		ID:        stored.ID(),
		BookingID: stored.BookingID(),
		Amount:    stored.Amount(),
		Currency:  stored.Currency(),
		IsRefund:  stored.IsRefund(),
		Status:    stored.TxStatus(),
	}, nil
}

func (r reads) VendorByID(_ context.Context, id uuid.UUID) (*shared.VendorSnapshot, error) {
	v, ok := r.u.vendors[id]
	if !ok {
		return nil, notFound("vendor not found")
	}
	return &v, nil
}

// lockedReads is the out-of-transaction view handed to uow.CommandReads().
type lockedReads struct {
	u *UoW
}

func (l lockedReads) RequestByID(ctx context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	l.u.mu.Lock()
	defer l.u.mu.Unlock()
	return reads{u: l.u}.RequestByID(ctx, id)
}

func (l lockedReads) QuoteByID(ctx context.Context, id uuid.UUID) (*shared.QuoteSnapshot, error) {
	l.u.mu.Lock()
	defer l.u.mu.Unlock()
	return reads{u: l.u}.QuoteByID(ctx, id)
}

func (l lockedReads) HasOpenQuote(ctx context.Context, requestID uuid.UUID) (bool, error) {
	l.u.mu.Lock()
	defer l.u.mu.Unlock()
	return reads{u: l.u}.HasOpenQuote(ctx, requestID)
}

func (l lockedReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	l.u.mu.Lock()
	defer l.u.mu.Unlock()
	return reads{u: l.u}.BookingByID(ctx, id)
}

func (l lockedReads) PaymentByID(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	l.u.mu.Lock()
	defer l.u.mu.Unlock()
	return reads{u: l.u}.PaymentByID(ctx, id)
}

func (l lockedReads) VendorByID(ctx context.Context, id uuid.UUID) (*shared.VendorSnapshot, error) {
	l.u.mu.Lock()
	defer l.u.mu.Unlock()
	return reads{u: l.u}.VendorByID(ctx, id)
}
