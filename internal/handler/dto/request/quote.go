package request

import (
	"strings"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Quantity    string  `json:"quantity" binding:"required"`
	UnitPrice   string  `json:"unit_price" binding:"required"`
	DiscountPct string  `json:"discount_pct"`
}

type CreateQuoteRequest struct {
	RequestID       uuid.UUID          `json:"request_id" binding:"required"`
	Items           []QuoteItemRequest `json:"items" binding:"required,min=1"`
	Discount        string             `json:"discount"`
	TaxRate         string             `json:"tax_rate"`
	DepositPct      *string            `json:"deposit_pct,omitempty"`
	ValidityDays    *int               `json:"validity_days,omitempty"`
	Title           *string            `json:"title,omitempty"`
	Message         *string            `json:"message,omitempty"`
	TermsConditions *string            `json:"terms_conditions,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
}

func (r CreateQuoteRequest) ToCommand() (commands.CreateQuoteCommand, error) {
	items := make([]commands.QuoteItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		item, err := it.toInput()
		if err != nil {
			return commands.CreateQuoteCommand{}, err
		}
		items = append(items, item)
	}

	discount, err := parseMoneyOrZero(r.Discount)
	if err != nil {
		return commands.CreateQuoteCommand{}, err
	}
	taxRate, err := parseDecimalOrZero(r.TaxRate)
	if err != nil {
		return commands.CreateQuoteCommand{}, err
	}
	depositPct, err := parsePercentPtr(r.DepositPct)
	if err != nil {
		return commands.CreateQuoteCommand{}, err
	}

	return commands.CreateQuoteCommand{
		RequestID:       r.RequestID,
		Items:           items,
		Discount:        discount,
		TaxRate:         taxRate,
		DepositPct:      depositPct,
		ValidityDays:    r.ValidityDays,
		Title:           r.Title,
		Message:         r.Message,
		TermsConditions: r.TermsConditions,
		Notes:           r.Notes,
	}, nil
}

func (r QuoteItemRequest) toInput() (commands.QuoteItemInput, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(r.Quantity))
	if err != nil {
		return commands.QuoteItemInput{}, err
	}
	unitPrice, err := money.FromString(strings.TrimSpace(r.UnitPrice))
	if err != nil {
		return commands.QuoteItemInput{}, err
	}
	discountPct := money.ZeroPercent()
	if strings.TrimSpace(r.DiscountPct) != "" {
		discountPct, err = parsePercent(r.DiscountPct)
		if err != nil {
			return commands.QuoteItemInput{}, err
		}
	}

	return commands.QuoteItemInput{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Unit:        r.Unit,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		DiscountPct: discountPct,
	}, nil
}

type RejectQuoteRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func parseMoneyOrZero(s string) (money.Money, error) {
	if strings.TrimSpace(s) == "" {
		return money.Zero(), nil
	}
	return money.FromString(strings.TrimSpace(s))
}

func parseDecimalOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

func parsePercent(s string) (money.Percent, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return money.Percent{}, err
	}
	return money.NewPercent(d)
}

func parsePercentPtr(s *string) (*money.Percent, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	p, err := parsePercent(*s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
