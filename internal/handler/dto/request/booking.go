package request

import (
	"strings"

	"eventmarket/internal/usecase/commands"

	"github.com/google/uuid"
)

type UpdateBookingRequest struct {
	VenueName    *string `json:"venue_name,omitempty"`
	VenueAddress *string `json:"venue_address,omitempty"`
	GuestCount   *int    `json:"guest_count,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r UpdateBookingRequest) ToCommand() commands.UpdateBookingCommand {
	return commands.UpdateBookingCommand{
		VenueName:    r.VenueName,
		VenueAddress: r.VenueAddress,
		GuestCount:   r.GuestCount,
		Notes:        r.Notes,
	}
}

type CompleteBookingRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type RecordPaymentRequest struct {
	Amount     string  `json:"amount" binding:"required"`
	IsDeposit  bool    `json:"is_deposit"`
	Method     *string `json:"method,omitempty"`
	GatewayRef *string `json:"gateway_ref,omitempty"`
}

func (r RecordPaymentRequest) ToCommand() (commands.RecordPaymentCommand, error) {
	amount, err := parseMoneyOrZero(r.Amount)
	if err != nil {
		return commands.RecordPaymentCommand{}, err
	}
	return commands.RecordPaymentCommand{
		Amount:     amount,
		IsDeposit:  r.IsDeposit,
		Method:     r.Method,
		GatewayRef: r.GatewayRef,
	}, nil
}

type RecordRefundRequest struct {
	Amount            string    `json:"amount" binding:"required"`
	OriginalPaymentID uuid.UUID `json:"original_payment_id" binding:"required"`
	Reason            *string   `json:"reason,omitempty"`
}

func (r RecordRefundRequest) ToCommand() (commands.RecordRefundCommand, error) {
	amount, err := parseMoneyOrZero(r.Amount)
	if err != nil {
		return commands.RecordRefundCommand{}, err
	}
	return commands.RecordRefundCommand{
		Amount:            amount,
		OriginalPaymentID: r.OriginalPaymentID,
		Reason:            r.Reason,
	}, nil
}

type CancelBookingRequest struct {
	Reason          string  `json:"reason" binding:"required"`
	ReasonCategory  *string `json:"reason_category,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	MutualAgreement bool    `json:"mutual_agreement"`
}

func (r CancelBookingRequest) ToCommand() commands.CancelBookingCommand {
	return commands.CancelBookingCommand{
		Reason:          strings.TrimSpace(r.Reason),
		ReasonCategory:  r.ReasonCategory,
		Notes:           r.Notes,
		MutualAgreement: r.MutualAgreement,
	}
}
