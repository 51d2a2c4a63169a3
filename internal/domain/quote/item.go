package quote

import (
	"errors"

	"eventmarket/internal/domain/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyItemName       = errors.New("item name is required")
	ErrNonPositiveQuantity = errors.New("item quantity must be positive")
	ErrNegativeUnitPrice   = errors.New("item unit price cannot be negative")
)

// Item is one priced line within a quote.
// line total = quantity * unit price * (1 - discount%), rounded to
// currency minor units.
type Item struct {
	id          uuid.UUID
	name        string
	description *string
	unit        *string
	quantity    decimal.Decimal
	unitPrice   money.Money
	discountPct money.Percent
	subtotal    money.Money
	lineTotal   money.Money
	orderIndex  int
}

type ItemParams struct {
	Name        string
	Description *string
	Unit        *string
	Quantity    decimal.Decimal
	UnitPrice   money.Money
	DiscountPct money.Percent
}

func NewItem(p ItemParams, orderIndex int) (Item, error) {
	if p.Name == "" {
		return Item{}, ErrEmptyItemName
	}
	if !p.Quantity.IsPositive() {
		return Item{}, ErrNonPositiveQuantity
	}
	if p.UnitPrice.IsNegative() {
		return Item{}, ErrNegativeUnitPrice
	}

	subtotal := money.New(p.Quantity.Mul(p.UnitPrice.Decimal())).Round()
	lineTotal := money.New(p.Quantity.Mul(p.UnitPrice.Decimal()).Mul(p.DiscountPct.Complement())).Round()

	return Item{
		id:          uuid.New(),
		name:        p.Name,
		description: p.Description,
		unit:        p.Unit,
		quantity:    p.Quantity,
		unitPrice:   p.UnitPrice,
		discountPct: p.DiscountPct,
		subtotal:    subtotal,
		lineTotal:   lineTotal,
		orderIndex:  orderIndex,
	}, nil
}

func ReconstructItem(
	id uuid.UUID,
	name string,
	description, unit *string,
	quantity decimal.Decimal,
	unitPrice money.Money,
	discountPct money.Percent,
	subtotal, lineTotal money.Money,
	orderIndex int,
) Item {
	return Item{
		id:          id,
		name:        name,
		description: description,
		unit:        unit,
		quantity:    quantity,
		unitPrice:   unitPrice,
		discountPct: discountPct,
		subtotal:    subtotal,
		lineTotal:   lineTotal,
		orderIndex:  orderIndex,
	}
}

func (i Item) ID() uuid.UUID              { return i.id }
func (i Item) Name() string               { return i.name }
func (i Item) Description() *string       { return i.description }
func (i Item) Unit() *string              { return i.unit }
func (i Item) Quantity() decimal.Decimal  { return i.quantity }
func (i Item) UnitPrice() money.Money     { return i.unitPrice }
func (i Item) DiscountPct() money.Percent { return i.discountPct }
func (i Item) Subtotal() money.Money      { return i.subtotal }
func (i Item) LineTotal() money.Money     { return i.lineTotal }
func (i Item) OrderIndex() int            { return i.orderIndex }
