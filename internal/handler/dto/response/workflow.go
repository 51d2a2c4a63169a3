package response

import (
	"eventmarket/internal/usecase/commands"

	"github.com/google/uuid"
)

// Query views already carry their JSON shape, so only command results get
// dedicated response types here.

type CreateRequestResponse struct {
	RequestID uuid.UUID `json:"request_id"`
}

func FromCreateRequestResult(res *commands.CreateRequestResult) *CreateRequestResponse {
	return &CreateRequestResponse{RequestID: res.RequestID}
}

type CreateQuoteResponse struct {
	QuoteID uuid.UUID `json:"quote_id"`
	Number  string    `json:"number"`
}

func FromCreateQuoteResult(res *commands.CreateQuoteResult) *CreateQuoteResponse {
	return &CreateQuoteResponse{QuoteID: res.QuoteID, Number: res.Number}
}

type AcceptQuoteResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
}

func FromAcceptQuoteResult(res *commands.AcceptQuoteResult) *AcceptQuoteResponse {
	return &AcceptQuoteResponse{BookingID: res.BookingID, BookingNumber: res.BookingNumber}
}

type RecordPaymentResponse struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	Number        string    `json:"number"`
	PaymentStatus string    `json:"payment_status"`
	AmountPaid    string    `json:"amount_paid"`
	AmountDue     string    `json:"amount_due"`
}

func FromRecordPaymentResult(res *commands.RecordPaymentResult) *RecordPaymentResponse {
	return &RecordPaymentResponse{
		PaymentID:     res.PaymentID,
		Number:        res.Number,
		PaymentStatus: res.PaymentStatus.String(),
		AmountPaid:    res.AmountPaid.String(),
		AmountDue:     res.AmountDue.String(),
	}
}

type CancelBookingResponse struct {
	CancellationID uuid.UUID `json:"cancellation_id"`
	LeadDays       int       `json:"lead_days"`
	RefundPct      string    `json:"refund_pct"`
	RefundAmount   string    `json:"refund_amount"`
	PenaltyAmount  string    `json:"penalty_amount"`
}

func FromCancelBookingResult(res *commands.CancelBookingResult) *CancelBookingResponse {
	return &CancelBookingResponse{
		CancellationID: res.CancellationID,
		LeadDays:       res.LeadDays,
		RefundPct:      res.RefundPct.String(),
		RefundAmount:   res.RefundAmount.String(),
		PenaltyAmount:  res.PenaltyAmount.String(),
	}
}
