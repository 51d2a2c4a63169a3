//go:build unit || e2e

package builder

import (
	"time"

	"eventmarket/internal/domain/money"
	domrequest "eventmarket/internal/domain/request"

	"github.com/google/uuid"
)

type BookingRequestBuilder struct {
	EventID          uuid.UUID
	VendorID         uuid.UUID
	OrganizerID      uuid.UUID
	Title            string
	Description      string
	EventStart       time.Time
	EventEnd         *time.Time
	GuestCount       *int
	BudgetMin        *money.Money
	BudgetMax        *money.Money
	Currency         string
	ResponseDeadline *time.Time
	Now              time.Time
}

func NewBookingRequestBuilder() *BookingRequestBuilder {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	guests := 120
	minB := money.FromInt(10000)
	maxB := money.FromInt(25000)
	return &BookingRequestBuilder{
		EventID:     uuid.New(),
		VendorID:    uuid.New(),
		OrganizerID: uuid.New(),
		Title:       "Wedding photography",
		Description: "Full-day coverage with two photographers",
		EventStart:  now.AddDate(0, 2, 0),
		GuestCount:  &guests,
		BudgetMin:   &minB,
		BudgetMax:   &maxB,
		Currency:    "TRY",
		Now:         now,
	}
}

func (b *BookingRequestBuilder) With(mutate func(*BookingRequestBuilder)) *BookingRequestBuilder {
	mutate(b)
	return b
}

func (b *BookingRequestBuilder) BuildDomain() (*domrequest.BookingRequest, error) {
	budget, err := domrequest.NewBudgetRange(b.BudgetMin, b.BudgetMax)
	if err != nil {
		return nil, err
	}
	window, err := domrequest.NewEventWindow(b.EventStart, b.EventEnd)
	if err != nil {
		return nil, err
	}
	return domrequest.NewBookingRequest(domrequest.NewRequestParams{
		EventID:          b.EventID,
		VendorID:         b.VendorID,
		OrganizerID:      b.OrganizerID,
		Title:            b.Title,
		Description:      b.Description,
		Window:           window,
		GuestCount:       b.GuestCount,
		Budget:           budget,
		Currency:         b.Currency,
		ResponseDeadline: b.ResponseDeadline,
	}, b.Now)
}
