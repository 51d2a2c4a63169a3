package request

import (
	"strings"
	"time"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequestRequest struct {
	EventID                uuid.UUID  `json:"event_id" binding:"required"`
	VendorID               uuid.UUID  `json:"vendor_id" binding:"required"`
	Title                  string     `json:"title" binding:"required"`
	Description            string     `json:"description"`
	EventStart             time.Time  `json:"event_start" binding:"required"`
	EventEnd               *time.Time `json:"event_end,omitempty"`
	VenueName              *string    `json:"venue_name,omitempty"`
	VenueAddress           *string    `json:"venue_address,omitempty"`
	GuestCount             *int       `json:"guest_count,omitempty"`
	ServiceCategory        *string    `json:"service_category,omitempty"`
	SpecialRequirements    *string    `json:"special_requirements,omitempty"`
	BudgetMin              *string    `json:"budget_min,omitempty"`
	BudgetMax              *string    `json:"budget_max,omitempty"`
	Currency               string     `json:"currency"`
	ResponseDeadline       *time.Time `json:"response_deadline,omitempty"`
	PreferredContactMethod *string    `json:"preferred_contact_method,omitempty"`
}

func (r CreateBookingRequestRequest) ToCommand() (commands.CreateRequestCommand, error) {
	budgetMin, err := parseMoneyPtr(r.BudgetMin)
	if err != nil {
		return commands.CreateRequestCommand{}, err
	}
	budgetMax, err := parseMoneyPtr(r.BudgetMax)
	if err != nil {
		return commands.CreateRequestCommand{}, err
	}

	return commands.CreateRequestCommand{
		EventID:                r.EventID,
		VendorID:               r.VendorID,
		Title:                  strings.TrimSpace(r.Title),
		Description:            strings.TrimSpace(r.Description),
		EventStart:             r.EventStart,
		EventEnd:               r.EventEnd,
		VenueName:              r.VenueName,
		VenueAddress:           r.VenueAddress,
		GuestCount:             r.GuestCount,
		ServiceCategory:        r.ServiceCategory,
		SpecialRequirements:    r.SpecialRequirements,
		BudgetMin:              budgetMin,
		BudgetMax:              budgetMax,
		Currency:               strings.ToUpper(strings.TrimSpace(r.Currency)),
		ResponseDeadline:       r.ResponseDeadline,
		PreferredContactMethod: r.PreferredContactMethod,
	}, nil
}

type UpdateBookingRequestRequest struct {
	Title               *string `json:"title,omitempty"`
	Description         *string `json:"description,omitempty"`
	VenueName           *string `json:"venue_name,omitempty"`
	VenueAddress        *string `json:"venue_address,omitempty"`
	GuestCount          *int    `json:"guest_count,omitempty"`
	SpecialRequirements *string `json:"special_requirements,omitempty"`
	BudgetMin           *string `json:"budget_min,omitempty"`
	BudgetMax           *string `json:"budget_max,omitempty"`
}

func (r UpdateBookingRequestRequest) ToCommand() (commands.UpdateRequestCommand, error) {
	budgetMin, err := parseMoneyPtr(r.BudgetMin)
	if err != nil {
		return commands.UpdateRequestCommand{}, err
	}
	budgetMax, err := parseMoneyPtr(r.BudgetMax)
	if err != nil {
		return commands.UpdateRequestCommand{}, err
	}

	return commands.UpdateRequestCommand{
		Title:               r.Title,
		Description:         r.Description,
		VenueName:           r.VenueName,
		VenueAddress:        r.VenueAddress,
		GuestCount:          r.GuestCount,
		SpecialRequirements: r.SpecialRequirements,
		BudgetMin:           budgetMin,
		BudgetMax:           budgetMax,
	}, nil
}

func parseMoneyPtr(s *string) (*money.Money, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	m, err := money.FromString(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &m, nil
}
