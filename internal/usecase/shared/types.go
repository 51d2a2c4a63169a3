package shared

import (
	"time"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots keep command validation off the read-model types.

type RequestSnapshot struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	VendorID    uuid.UUID
	OrganizerID uuid.UUID
	Status      request.Status
	Currency    string
	EventStart  time.Time
	EventEnd    *time.Time
	ExpiresAt   time.Time
}

type QuoteSnapshot struct {
	ID          uuid.UUID
	RequestID   uuid.UUID
	VendorID    uuid.UUID
	OrganizerID uuid.UUID
	Status      quote.Status
	Version     int
	Currency    string
	Total       money.Money
	Deposit     money.Money
	ValidUntil  time.Time
}

type BookingSnapshot struct {
	ID             uuid.UUID
	QuoteID        uuid.UUID
	RequestID      uuid.UUID
	VendorID       uuid.UUID
	OrganizerID    uuid.UUID
	Status         booking.Status
	PaymentStatus  booking.PaymentStatus
	Currency       string
	EventStart     time.Time
	EventEnd       *time.Time
	TotalAmount    money.Money
	DepositAmount  money.Money
	AmountPaid     money.Money
	PolicySchedule string
}

type PaymentSnapshot struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Amount    money.Money
	Currency  string
	IsRefund  bool
	Status    booking.TxStatus
}

// VendorSnapshot carries the vendor profile fields frozen into bookings at
// acceptance time. Vendor accounts themselves live outside this service.
type VendorSnapshot struct {
	ID             uuid.UUID
	OwnerUserID    uuid.UUID
	DisplayName    string
	Active         bool
	CommissionRate decimal.Decimal
	PolicyText     *string
	PolicySchedule *string
}
