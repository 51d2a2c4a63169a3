package booking

import (
	"errors"
	"time"

	"eventmarket/internal/domain/money"

	"github.com/google/uuid"
)

var (
	ErrRefundNeedsOriginal = errors.New("refund must reference the original payment")
)

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxSucceeded TxStatus = "succeeded"
	TxFailed    TxStatus = "failed"
)

// Payment is one monetary movement against a booking, charge or refund.
// Rows are append-only; the booking's running balance is updated in the same
// transaction that inserts the row.
type Payment struct {
	id        uuid.UUID
	bookingID uuid.UUID
	number    string

	amount   money.Money
	currency string

	isDeposit bool
	isRefund  bool
	status    TxStatus

	originalPaymentID *uuid.UUID

	method     *string
	gatewayRef *string
	reason     *string

	processedAt time.Time
	createdAt   time.Time
}

type NewChargeParams struct {
	BookingID  uuid.UUID
	Number     string
	Amount     money.Money
	Currency   string
	IsDeposit  bool
	Method     *string
	GatewayRef *string
}

// NewCharge records a succeeded incoming payment.
func NewCharge(p NewChargeParams, now time.Time) (*Payment, error) {
	if !p.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	return &Payment{
		id:          uuid.New(),
		bookingID:   p.BookingID,
		number:      p.Number,
		amount:      p.Amount,
		currency:    p.Currency,
		isDeposit:   p.IsDeposit,
		status:      TxSucceeded,
		method:      p.Method,
		gatewayRef:  p.GatewayRef,
		processedAt: now,
		createdAt:   now,
	}, nil
}

type NewRefundParams struct {
	BookingID         uuid.UUID
	Number            string
	Amount            money.Money
	Currency          string
	OriginalPaymentID uuid.UUID
	Reason            *string
}

// NewRefund records a succeeded outgoing refund tied to its original charge.
func NewRefund(p NewRefundParams, now time.Time) (*Payment, error) {
	if !p.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if p.OriginalPaymentID == uuid.Nil {
		return nil, ErrRefundNeedsOriginal
	}
	orig := p.OriginalPaymentID
	return &Payment{
		id:                uuid.New(),
		bookingID:         p.BookingID,
		number:            p.Number,
		amount:            p.Amount,
		currency:          p.Currency,
		isRefund:          true,
		status:            TxSucceeded,
		originalPaymentID: &orig,
		reason:            p.Reason,
		processedAt:       now,
		createdAt:         now,
	}, nil
}

type ReconstructPaymentParams struct {
	ID                uuid.UUID
	BookingID         uuid.UUID
	Number            string
	Amount            money.Money
	Currency          string
	IsDeposit         bool
	IsRefund          bool
	Status            TxStatus
	OriginalPaymentID *uuid.UUID
	Method            *string
	GatewayRef        *string
	Reason            *string
	ProcessedAt       time.Time
	CreatedAt         time.Time
}

func ReconstructPayment(p ReconstructPaymentParams) *Payment {
	return &Payment{
		id:                p.ID,
		bookingID:         p.BookingID,
		number:            p.Number,
		amount:            p.Amount,
		currency:          p.Currency,
		isDeposit:         p.IsDeposit,
		isRefund:          p.IsRefund,
		status:            p.Status,
		originalPaymentID: p.OriginalPaymentID,
		method:            p.Method,
		gatewayRef:        p.GatewayRef,
		reason:            p.Reason,
		processedAt:       p.ProcessedAt,
		createdAt:         p.CreatedAt,
	}
}

func (p *Payment) ID() uuid.UUID        { return p.id }
func (p *Payment) BookingID() uuid.UUID { return p.bookingID }
func (p *Payment) Number() string       { return p.number }
func (p *Payment) Amount() money.Money  { return p.amount }
func (p *Payment) Currency() string     { return p.currency }
func (p *Payment) IsDeposit() bool      { return p.isDeposit }
func (p *Payment) IsRefund() bool       { return p.isRefund }
func (p *Payment) TxStatus() TxStatus   { return p.status }
func (p *Payment) OriginalPaymentID() *uuid.UUID {
	return p.originalPaymentID
}
func (p *Payment) Method() *string        { return p.method }
func (p *Payment) GatewayRef() *string    { return p.gatewayRef }
func (p *Payment) Reason() *string        { return p.reason }
func (p *Payment) ProcessedAt() time.Time { return p.processedAt }
func (p *Payment) CreatedAt() time.Time   { return p.createdAt }
