package commands

import (
	"context"
	"errors"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"
	"eventmarket/internal/domain/quote"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteItemInput struct {
	Name        string
	Description *string
	Unit        *string
	Quantity    decimal.Decimal
	UnitPrice   money.Money
	DiscountPct money.Percent
}

type CreateQuoteCommand struct {
	RequestID       uuid.UUID
	Items           []QuoteItemInput
	Discount        money.Money
	TaxRate         decimal.Decimal
	DepositPct      *money.Percent
	ValidityDays    *int
	Title           *string
	Message         *string
	TermsConditions *string
	Notes           *string
}

type CreateQuoteResult struct {
	QuoteID uuid.UUID
	Number  string
}

type AcceptQuoteResult struct {
	BookingID     uuid.UUID
	BookingNumber string
}

type QuoteCommands interface {
	CreateQuote(ctx context.Context, cmd CreateQuoteCommand, actor party.Actor) (*CreateQuoteResult, error)
	SendQuote(ctx context.Context, quoteID uuid.UUID, actor party.Actor) error
	MarkQuoteViewed(ctx context.Context, quoteID uuid.UUID, actor party.Actor) error
	AcceptQuote(ctx context.Context, quoteID uuid.UUID, actor party.Actor) (*AcceptQuoteResult, error)
	RejectQuote(ctx context.Context, quoteID uuid.UUID, reason *string, actor party.Actor) error
	ReviseQuote(ctx context.Context, quoteID uuid.UUID, cmd CreateQuoteCommand, actor party.Actor) (*CreateQuoteResult, error)
}

type quoteUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events EventPublisher
}

func NewQuoteUseCase(uow shared.UnitOfWork, clk clock.Clock, events EventPublisher) QuoteCommands {
	return &quoteUseCaseImpl{uow: uow, clock: clk, events: events}
}

func (uc *quoteUseCaseImpl) CreateQuote(ctx context.Context, cmd CreateQuoteCommand, actor party.Actor) (*CreateQuoteResult, error) {
	now := uc.clock.Now()

	snap, err := uc.uow.CommandReads().RequestByID(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireVendorOwner(ctx, snap.VendorID, actor); err != nil {
		return nil, err
	}
	if !snap.Status.Quotable() || now.After(snap.ExpiresAt) {
		return nil, errs.ErrRequestNotOpen
	}

	items, err := buildItems(cmd.Items)
	if err != nil {
		return nil, err
	}

	var result CreateQuoteResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// re-check the single-open-quote invariant inside the transaction
		open, derr := tx.Reads().HasOpenQuote(ctx, cmd.RequestID)
		if derr != nil {
			return derr
		}
		if open {
			return errs.ErrOpenQuoteExists
		}

		number, derr := tx.Sequences().Next(ctx, tx.DB(), shared.SequenceQuote, now.Year())
		if derr != nil {
			return derr
		}

		q, derr := quote.NewQuote(quote.NewQuoteParams{
			RequestID:       cmd.RequestID,
			VendorID:        snap.VendorID,
			OrganizerID:     snap.OrganizerID,
			Number:          number,
			Items:           items,
			Currency:        snap.Currency,
			TaxRate:         cmd.TaxRate,
			Discount:        cmd.Discount,
			DepositPct:      cmd.DepositPct,
			ValidityDays:    cmd.ValidityDays,
			Title:           cmd.Title,
			Message:         cmd.Message,
			TermsConditions: cmd.TermsConditions,
			Notes:           cmd.Notes,
		}, now)
		if derr != nil {
			return markQuoteError(derr)
		}

		if _, derr = tx.Quotes().Create(ctx, tx.DB(), q); derr != nil {
			return derr
		}
		result = CreateQuoteResult{QuoteID: q.ID(), Number: q.Number()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *quoteUseCaseImpl) SendQuote(ctx context.Context, quoteID uuid.UUID, actor party.Actor) error {
	now := uc.clock.Now()

	snap, err := uc.uow.CommandReads().QuoteByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if err := uc.requireVendorOwner(ctx, snap.VendorID, actor); err != nil {
		return err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		affected, derr := tx.Quotes().MarkSent(ctx, tx.DB(), quoteID, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrQuoteNotSendable
		}

		// sending a quote moves the request to quoted; a request resolved in
		// the meantime aborts the send
		affected, derr = tx.Requests().MarkQuoted(ctx, tx.DB(), snap.RequestID, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrRequestNotOpen
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ctx, TopicQuoteSent, map[string]any{
		"quote_id":   quoteID,
		"request_id": snap.RequestID,
	})
	uc.events.Publish(ctx, TopicRequestQuoted, map[string]any{
		"request_id": snap.RequestID,
	})
	return nil
}

func (uc *quoteUseCaseImpl) MarkQuoteViewed(ctx context.Context, quoteID uuid.UUID, actor party.Actor) error {
	snap, err := uc.uow.CommandReads().QuoteByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if snap.OrganizerID != actor.UserID && actor.Role != party.RoleAdmin {
		return errs.ErrNotOrganizer
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Quotes().MarkViewed(ctx, tx.DB(), quoteID, uc.clock.Now())
	})
}

// AcceptQuote resolves the request, accepts the quote, expires any sibling
// quotes and creates the booking in one transaction. The request's
// compare-and-set from quoted to accepted is the exclusivity gate under
// concurrent acceptance: exactly one caller wins.
func (uc *quoteUseCaseImpl) AcceptQuote(ctx context.Context, quoteID uuid.UUID, actor party.Actor) (*AcceptQuoteResult, error) {
	now := uc.clock.Now()

	var result AcceptQuoteResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().QuoteByID(ctx, quoteID)
		if derr != nil {
			return derr
		}
		if snap.OrganizerID != actor.UserID && actor.Role != party.RoleAdmin {
			return errs.ErrNotOrganizer
		}
		if !snap.Status.Acceptable() {
			return errs.ErrQuoteNotAcceptable
		}
		if now.After(snap.ValidUntil) {
			return errs.ErrQuoteExpired
		}

		affected, derr := tx.Requests().TransitionStatus(ctx, tx.DB(), snap.RequestID,
			[]request.Status{request.StatusQuoted}, request.StatusAccepted, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrRequestAlreadyResolved
		}

		affected, derr = tx.Quotes().Accept(ctx, tx.DB(), quoteID, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrQuoteNotAcceptable
		}

		if derr = tx.Quotes().ExpireSiblings(ctx, tx.DB(), snap.RequestID, quoteID, now); derr != nil {
			return derr
		}

		q, derr := tx.Quotes().FindByID(ctx, tx.DB(), quoteID)
		if derr != nil {
			return derr
		}
		r, derr := tx.Requests().FindByID(ctx, tx.DB(), snap.RequestID)
		if derr != nil {
			return derr
		}
		vendor, derr := tx.Reads().VendorByID(ctx, snap.VendorID)
		if derr != nil {
			return derr
		}

		number, derr := tx.Sequences().Next(ctx, tx.DB(), shared.SequenceBooking, now.Year())
		if derr != nil {
			return derr
		}

		schedule := cancellation.DefaultSchedule
		if vendor.PolicySchedule != nil && *vendor.PolicySchedule != "" {
			if _, perr := cancellation.ParseSchedule(*vendor.PolicySchedule); perr == nil {
				schedule = *vendor.PolicySchedule
			}
		}

		b := booking.NewFromQuote(q, r, booking.NewFromQuoteParams{
			Number:         number,
			CommissionRate: vendor.CommissionRate,
			PolicyText:     vendor.PolicyText,
			PolicySchedule: schedule,
		}, now)

		if _, derr = tx.Bookings().Create(ctx, tx.DB(), b); derr != nil {
			return derr
		}
		result = AcceptQuoteResult{BookingID: b.ID(), BookingNumber: b.Number()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, TopicQuoteAccepted, map[string]any{
		"quote_id":   quoteID,
		"booking_id": result.BookingID,
	})
	uc.events.Publish(ctx, TopicBookingCreated, map[string]any{
		"booking_id": result.BookingID,
		"number":     result.BookingNumber,
	})
	return &result, nil
}

func (uc *quoteUseCaseImpl) RejectQuote(ctx context.Context, quoteID uuid.UUID, reason *string, actor party.Actor) error {
	now := uc.clock.Now()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().QuoteByID(ctx, quoteID)
		if derr != nil {
			return derr
		}
		if snap.OrganizerID != actor.UserID && actor.Role != party.RoleAdmin {
			return errs.ErrNotOrganizer
		}

		affected, derr := tx.Quotes().Reject(ctx, tx.DB(), quoteID, reason, now)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return errs.ErrQuoteNotRejectable
		}
		// the request stays quoted so the vendor may revise
		return nil
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ctx, TopicQuoteRejected, map[string]any{
		"quote_id": quoteID,
	})
	return nil
}

func (uc *quoteUseCaseImpl) ReviseQuote(ctx context.Context, quoteID uuid.UUID, cmd CreateQuoteCommand, actor party.Actor) (*CreateQuoteResult, error) {
	now := uc.clock.Now()

	snap, err := uc.uow.CommandReads().QuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireVendorOwner(ctx, snap.VendorID, actor); err != nil {
		return nil, err
	}

	items, err := buildItems(cmd.Items)
	if err != nil {
		return nil, err
	}

	var result CreateQuoteResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		prev, derr := tx.Quotes().FindByID(ctx, tx.DB(), quoteID)
		if derr != nil {
			return derr
		}
		if prev.Status() != quote.StatusRejected {
			return errs.ErrQuoteNotRevisable
		}

		reqSnap, derr := tx.Reads().RequestByID(ctx, prev.RequestID())
		if derr != nil {
			return derr
		}
		if !reqSnap.Status.Quotable() || now.After(reqSnap.ExpiresAt) {
			return errs.ErrRequestNotOpen
		}

		open, derr := tx.Reads().HasOpenQuote(ctx, prev.RequestID())
		if derr != nil {
			return derr
		}
		if open {
			return errs.ErrOpenQuoteExists
		}

		number, derr := tx.Sequences().Next(ctx, tx.DB(), shared.SequenceQuote, now.Year())
		if derr != nil {
			return derr
		}

		rev, derr := prev.NewRevision(quote.NewQuoteParams{
			RequestID:       prev.RequestID(),
			VendorID:        prev.VendorID(),
			OrganizerID:     prev.OrganizerID(),
			Number:          number,
			Items:           items,
			Currency:        prev.Currency(),
			TaxRate:         cmd.TaxRate,
			Discount:        cmd.Discount,
			DepositPct:      cmd.DepositPct,
			ValidityDays:    cmd.ValidityDays,
			Title:           cmd.Title,
			Message:         cmd.Message,
			TermsConditions: cmd.TermsConditions,
			Notes:           cmd.Notes,
		}, now)
		if derr != nil {
			return markQuoteError(derr)
		}

		if _, derr = tx.Quotes().Create(ctx, tx.DB(), rev); derr != nil {
			return derr
		}
		result = CreateQuoteResult{QuoteID: rev.ID(), Number: rev.Number()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *quoteUseCaseImpl) requireVendorOwner(ctx context.Context, vendorID uuid.UUID, actor party.Actor) error {
	if actor.Role == party.RoleAdmin {
		return nil
	}
	vendor, err := uc.uow.CommandReads().VendorByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if vendor.OwnerUserID != actor.UserID {
		return errs.ErrNotVendor
	}
	return nil
}

func buildItems(inputs []QuoteItemInput) ([]quote.Item, error) {
	if len(inputs) == 0 {
		return nil, errs.ErrEmptyItemList
	}
	items := make([]quote.Item, 0, len(inputs))
	for i, in := range inputs {
		item, err := quote.NewItem(quote.ItemParams{
			Name:        in.Name,
			Description: in.Description,
			Unit:        in.Unit,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			DiscountPct: in.DiscountPct,
		}, i)
		if err != nil {
			return nil, markQuoteError(err)
		}
		items = append(items, item)
	}
	return items, nil
}

// markQuoteError lifts quote-domain validation failures onto the usecase
// sentinels so handlers map them to client errors, never 500.
func markQuoteError(err error) error {
	switch {
	case errors.Is(err, quote.ErrEmptyItems):
		return errs.Mark(err, errs.ErrEmptyItemList)
	case errors.Is(err, quote.ErrEmptyItemName),
		errors.Is(err, quote.ErrNonPositiveQuantity),
		errors.Is(err, quote.ErrNegativeUnitPrice):
		return errs.Mark(err, errs.ErrInvalidItem)
	case errors.Is(err, quote.ErrNegativeDiscount):
		return errs.Mark(err, errs.ErrNonPositiveAmount)
	case errors.Is(err, quote.ErrNegativeTaxRate):
		return errs.Mark(err, errs.ErrInvalidTaxRate)
	case errors.Is(err, quote.ErrDiscountExceedsSubtotal):
		return errs.Mark(err, errs.ErrDiscountExceedsSubtotal)
	case errors.Is(err, quote.ErrInvalidValidity):
		return errs.Mark(err, errs.ErrInvalidValidityDays)
	}
	return err
}
