//go:build unit || e2e

package memuow

import (
	"fmt"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

func cloneRequest(r *request.BookingRequest) *request.BookingRequest {
	return request.Reconstruct(request.ReconstructParams{
		ID:                     r.ID(),
		EventID:                r.EventID(),
		VendorID:               r.VendorID(),
		OrganizerID:            r.OrganizerID(),
		Status:                 r.Status(),
		Title:                  r.Title(),
		Description:            r.Description(),
		Window:                 r.Window(),
		VenueName:              r.VenueName(),
		VenueAddress:           r.VenueAddress(),
		GuestCount:             r.GuestCount(),
		ServiceCategory:        r.ServiceCategory(),
		SpecialRequirements:    r.SpecialRequirements(),
		Budget:                 r.Budget(),
		Currency:               r.Currency(),
		ResponseDeadline:       r.ResponseDeadline(),
		ExpiresAt:              r.ExpiresAt(),
		PreferredContactMethod: r.PreferredContactMethod(),
		ViewedByVendor:         r.ViewedByVendor(),
		ViewedAt:               r.ViewedAt(),
		RespondedAt:            r.RespondedAt(),
		CreatedAt:              r.CreatedAt(),
		UpdatedAt:              r.UpdatedAt(),
	})
}

func cloneQuote(q *quote.Quote) *quote.Quote {
	return quote.Reconstruct(quote.ReconstructParams{
		ID:              q.ID(),
		RequestID:       q.RequestID(),
		VendorID:        q.VendorID(),
		OrganizerID:     q.OrganizerID(),
		Number:          q.Number(),
		Status:          q.Status(),
		Version:         q.Version(),
		PreviousQuoteID: q.PreviousQuoteID(),
		Items:           q.Items(),
		Currency:        q.Currency(),
		TaxRate:         q.TaxRate(),
		Subtotal:        q.Subtotal(),
		Discount:        q.Discount(),
		Tax:             q.Tax(),
		Total:           q.Total(),
		DepositPct:      q.DepositPct(),
		DepositAmount:   q.DepositAmount(),
		Title:           q.Title(),
		Message:         q.Message(),
		TermsConditions: q.TermsConditions(),
		Notes:           q.Notes(),
		ValidUntil:      q.ValidUntil(),
		SentAt:          q.SentAt(),
		ViewedAt:        q.ViewedAt(),
		RespondedAt:     q.RespondedAt(),
		RejectionReason: q.RejectionReason(),
		CreatedAt:       q.CreatedAt(),
		UpdatedAt:       q.UpdatedAt(),
	})
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(booking.ReconstructParams{
		ID:               b.ID(),
		QuoteID:          b.QuoteID(),
		RequestID:        b.RequestID(),
		EventID:          b.EventID(),
		VendorID:         b.VendorID(),
		OrganizerID:      b.OrganizerID(),
		Number:           b.Number(),
		Status:           b.Status(),
		PaymentStatus:    b.PaymentStatus(),
		ServiceTitle:     b.ServiceTitle(),
		Window:           b.Window(),
		VenueName:        b.VenueName(),
		VenueAddress:     b.VenueAddress(),
		GuestCount:       b.GuestCount(),
		Currency:         b.Currency(),
		TotalAmount:      b.TotalAmount(),
		DepositAmount:    b.DepositAmount(),
		AmountPaid:       b.AmountPaid(),
		CommissionRate:   b.CommissionRate(),
		CommissionAmount: b.CommissionAmount(),
		PolicyText:       b.PolicyText(),
		PolicySchedule:   b.PolicySchedule(),
		Notes:            b.Notes(),
		CompletionNotes:  b.CompletionNotes(),
		CompletedAt:      b.CompletedAt(),
		CancelledAt:      b.CancelledAt(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	})
}

func clonePayment(p *booking.Payment) *booking.Payment {
	return booking.ReconstructPayment(booking.ReconstructPaymentParams{
		ID:                p.ID(),
		BookingID:         p.BookingID(),
		Number:            p.Number(),
		Amount:            p.Amount(),
		Currency:          p.Currency(),
		IsDeposit:         p.IsDeposit(),
		IsRefund:          p.IsRefund(),
		Status:            p.TxStatus(),
		OriginalPaymentID: p.OriginalPaymentID(),
		Method:            p.Method(),
		GatewayRef:        p.GatewayRef(),
		Reason:            p.Reason(),
		ProcessedAt:       p.ProcessedAt(),
		CreatedAt:         p.CreatedAt(),
	})
}

func cloneCancellation(c *cancellation.Cancellation) *cancellation.Cancellation {
	return cancellation.Reconstruct(cancellation.ReconstructParams{
		ID:              c.ID(),
		BookingID:       c.BookingID(),
		CancelledBy:     c.CancelledBy(),
		Initiator:       c.Initiator(),
		Reason:          c.Reason(),
		ReasonCategory:  c.ReasonCategory(),
		LeadDays:        c.LeadDays(),
		CancelledAt:     c.CancelledAt(),
		RefundPct:       c.RefundPct(),
		RefundAmount:    c.RefundAmount(),
		PenaltyAmount:   c.PenaltyAmount(),
		MutualAgreement: c.MutualAgreement(),
		Notes:           c.Notes(),
		CreatedAt:       c.CreatedAt(),
	})
}

// Seed and inspection helpers for test setup and assertions.

func (u *UoW) SeedVendor(v shared.VendorSnapshot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.vendors[v.ID] = v
}

func (u *UoW) SeedRequest(r *request.BookingRequest) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requests[r.ID()] = cloneRequest(r)
}

func (u *UoW) SeedQuote(q *quote.Quote) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.quotes[q.ID()] = cloneQuote(q)
	u.reserveNumber(shared.SequenceQuote, q.Number())
}

func (u *UoW) SeedBooking(b *booking.Booking) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bookings[b.ID()] = cloneBooking(b)
	u.reserveNumber(shared.SequenceBooking, b.Number())
}

func (u *UoW) SeedPayment(p *booking.Payment) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.payments[p.ID()] = clonePayment(p)
	u.reserveNumber(shared.SequencePayment, p.Number())
}

// reserveNumber advances the per-kind counter past a seeded display number so
// later issuance never collides with a fixture.
func (u *UoW) reserveNumber(kind shared.SequenceKind, number string) {
	var prefix string
	var year int
	var value int64
	if _, err := fmt.Sscanf(number, "%1s-%d-%d", &prefix, &year, &value); err != nil {
		return
	}
	key := fmt.Sprintf("%s:%d", kind, year)
	if value > u.counters[key] {
		u.counters[key] = value
	}
}

func (u *UoW) StoredRequest(id uuid.UUID) *request.BookingRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	if r, ok := u.requests[id]; ok {
		return cloneRequest(r)
	}
	return nil
}

func (u *UoW) StoredQuote(id uuid.UUID) *quote.Quote {
	u.mu.Lock()
	defer u.mu.Unlock()
	if q, ok := u.quotes[id]; ok {
		return cloneQuote(q)
	}
	return nil
}

func (u *UoW) StoredBooking(id uuid.UUID) *booking.Booking {
	u.mu.Lock()
	defer u.mu.Unlock()
	if b, ok := u.bookings[id]; ok {
		return cloneBooking(b)
	}
	return nil
}

func (u *UoW) StoredPayments(bookingID uuid.UUID) []*booking.Payment {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []*booking.Payment
	for _, p := range u.payments {
		if p.BookingID() == bookingID {
			out = append(out, clonePayment(p))
		}
	}
	return out
}

func (u *UoW) StoredCancellation(bookingID uuid.UUID) *cancellation.Cancellation {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, c := range u.cancellations {
		if c.BookingID() == bookingID {
			return cloneCancellation(c)
		}
	}
	return nil
}

func (u *UoW) QuotesForRequest(requestID uuid.UUID) []*quote.Quote {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []*quote.Quote
	for _, q := range u.quotes {
		if q.RequestID() == requestID {
			out = append(out, cloneQuote(q))
		}
	}
	return out
}
