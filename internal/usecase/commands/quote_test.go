//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	dombooking "eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	domquote "eventmarket/internal/domain/quote"
	domrequest "eventmarket/internal/domain/request"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/commands"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleItemCommand(unitPrice int64) commands.CreateQuoteCommand {
	return commands.CreateQuoteCommand{
		Items: []commands.QuoteItemInput{
			{
				Name:      "Event service package",
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: money.FromInt(unitPrice),
			},
		},
		Discount: money.Zero(),
		TaxRate:  decimal.Zero,
	}
}

func TestCreateQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("vendor owner creates a draft quote with a sequential number", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		result, err := f.quotes().CreateQuote(ctx, cmd, f.vendor)
		require.NoError(t, err)
		assert.Equal(t, "Q-2026-00001", result.Number)

		q := f.uow.StoredQuote(result.QuoteID)
		require.NotNil(t, q)
		assert.Equal(t, domquote.StatusDraft, q.Status())
		assert.Equal(t, 1, q.Version())
		assert.Equal(t, "1500.00", q.Total().String())
		assert.Equal(t, "450.00", q.DepositAmount().String())
		assert.Equal(t, r.Currency(), q.Currency())
	})

	t.Run("quote currency is inherited from the request", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		result, err := f.quotes().CreateQuote(ctx, cmd, f.admin)
		require.NoError(t, err)
		assert.Equal(t, "TRY", f.uow.StoredQuote(result.QuoteID).Currency())
	})

	t.Run("non-owner vendor is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		_, err := f.quotes().CreateQuote(ctx, cmd, f.stranger)
		assert.ErrorIs(t, err, errs.ErrNotVendor)
	})

	t.Run("second open quote on the same request is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		_, err := f.quotes().CreateQuote(ctx, cmd, f.vendor)
		require.NoError(t, err)

		_, err = f.quotes().CreateQuote(ctx, cmd, f.vendor)
		assert.ErrorIs(t, err, errs.ErrOpenQuoteExists)
	})

	t.Run("expired request cannot be quoted", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		f.clk.Set(r.ExpiresAt().AddDate(0, 0, 1))

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		_, err := f.quotes().CreateQuote(ctx, cmd, f.vendor)
		assert.ErrorIs(t, err, errs.ErrRequestNotOpen)
	})

	t.Run("empty item list is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		_, err := f.quotes().CreateQuote(ctx, commands.CreateQuoteCommand{RequestID: r.ID()}, f.vendor)
		assert.ErrorIs(t, err, errs.ErrEmptyItemList)
	})

	t.Run("domain validation failures carry their usecase sentinel", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		overDiscount := singleItemCommand(1500)
		overDiscount.RequestID = r.ID()
		overDiscount.Discount = money.FromInt(2000)
		_, err := f.quotes().CreateQuote(ctx, overDiscount, f.vendor)
		assert.ErrorIs(t, err, errs.ErrDiscountExceedsSubtotal)
		assert.ErrorIs(t, err, domquote.ErrDiscountExceedsSubtotal)

		badTax := singleItemCommand(1500)
		badTax.RequestID = r.ID()
		badTax.TaxRate = decimal.NewFromInt(-1)
		_, err = f.quotes().CreateQuote(ctx, badTax, f.vendor)
		assert.ErrorIs(t, err, errs.ErrInvalidTaxRate)

		zeroDays := 0
		badValidity := singleItemCommand(1500)
		badValidity.RequestID = r.ID()
		badValidity.ValidityDays = &zeroDays
		_, err = f.quotes().CreateQuote(ctx, badValidity, f.vendor)
		assert.ErrorIs(t, err, errs.ErrInvalidValidityDays)

		badItem := singleItemCommand(1500)
		badItem.RequestID = r.ID()
		badItem.Items[0].UnitPrice = money.FromInt(-10)
		_, err = f.quotes().CreateQuote(ctx, badItem, f.vendor)
		assert.ErrorIs(t, err, errs.ErrInvalidItem)
	})
}

func TestSendQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("sending moves the quote to sent and the request to quoted", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		created, err := f.quotes().CreateQuote(ctx, cmd, f.vendor)
		require.NoError(t, err)

		require.NoError(t, f.quotes().SendQuote(ctx, created.QuoteID, f.vendor))

		assert.Equal(t, domquote.StatusSent, f.uow.StoredQuote(created.QuoteID).Status())
		stored := f.uow.StoredRequest(r.ID())
		assert.Equal(t, domrequest.StatusQuoted, stored.Status())
		assert.NotNil(t, stored.RespondedAt())
		assert.True(t, f.pub.Has(commands.TopicQuoteSent))
		assert.True(t, f.pub.Has(commands.TopicRequestQuoted))
	})

	t.Run("resending is rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		err := f.quotes().SendQuote(ctx, q.ID(), f.vendor)
		assert.ErrorIs(t, err, errs.ErrQuoteNotSendable)
	})
}

func TestMarkQuoteViewed(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer view stamps sent to viewed once", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		require.NoError(t, f.quotes().MarkQuoteViewed(ctx, q.ID(), f.organizer))
		first := f.uow.StoredQuote(q.ID())
		assert.Equal(t, domquote.StatusViewed, first.Status())
		require.NotNil(t, first.ViewedAt())

		f.clk.Add(time.Hour)
		require.NoError(t, f.quotes().MarkQuoteViewed(ctx, q.ID(), f.organizer))
		assert.Equal(t, first.ViewedAt(), f.uow.StoredQuote(q.ID()).ViewedAt())
	})

	t.Run("vendor cannot mark the quote viewed", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		err := f.quotes().MarkQuoteViewed(ctx, q.ID(), f.vendor)
		assert.ErrorIs(t, err, errs.ErrNotOrganizer)
	})
}

func TestAcceptQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("acceptance creates a confirmed booking frozen from the quote", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		result, err := f.quotes().AcceptQuote(ctx, q.ID(), f.organizer)
		require.NoError(t, err)
		assert.Equal(t, "B-2026-00001", result.BookingNumber)

		b := f.uow.StoredBooking(result.BookingID)
		require.NotNil(t, b)
		assert.Equal(t, dombooking.StatusConfirmed, b.Status())
		assert.Equal(t, dombooking.PaymentPending, b.PaymentStatus())
		assert.Equal(t, "1500.00", b.TotalAmount().String())
		assert.Equal(t, "450.00", b.DepositAmount().String())
		assert.Equal(t, "225.00", b.CommissionAmount().String())
		assert.Equal(t, q.ID(), b.QuoteID())
		assert.Equal(t, r.ID(), b.RequestID())

		assert.Equal(t, domquote.StatusAccepted, f.uow.StoredQuote(q.ID()).Status())
		assert.Equal(t, domrequest.StatusAccepted, f.uow.StoredRequest(r.ID()).Status())
		assert.True(t, f.pub.Has(commands.TopicQuoteAccepted))
		assert.True(t, f.pub.Has(commands.TopicBookingCreated))
	})

	t.Run("vendor cannot accept their own quote", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		_, err := f.quotes().AcceptQuote(ctx, q.ID(), f.vendor)
		assert.ErrorIs(t, err, errs.ErrNotOrganizer)
	})

	t.Run("expired quote cannot be accepted", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)
		f.clk.Set(q.ValidUntil().AddDate(0, 0, 1))

		_, err := f.quotes().AcceptQuote(ctx, q.ID(), f.organizer)
		assert.ErrorIs(t, err, errs.ErrQuoteExpired)
	})

	t.Run("concurrent acceptance admits exactly one winner", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)
		uc := f.quotes()

		var wg sync.WaitGroup
		outcomes := make([]error, 2)
		for i := range outcomes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, outcomes[i] = uc.AcceptQuote(ctx, q.ID(), f.organizer)
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range outcomes {
			if err == nil {
				successes++
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, domrequest.StatusAccepted, f.uow.StoredRequest(r.ID()).Status())
	})
}

func TestRejectQuote(t *testing.T) {
	ctx := context.Background()
	reason := "over budget"

	t.Run("rejection records the reason and leaves the request quoted", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		require.NoError(t, f.quotes().RejectQuote(ctx, q.ID(), &reason, f.organizer))

		stored := f.uow.StoredQuote(q.ID())
		assert.Equal(t, domquote.StatusRejected, stored.Status())
		require.NotNil(t, stored.RejectionReason())
		assert.Equal(t, reason, *stored.RejectionReason())
		assert.Equal(t, domrequest.StatusQuoted, f.uow.StoredRequest(r.ID()).Status())
		assert.True(t, f.pub.Has(commands.TopicQuoteRejected))
	})

	t.Run("draft quote cannot be rejected", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)

		cmd := singleItemCommand(1500)
		cmd.RequestID = r.ID()
		created, err := f.quotes().CreateQuote(ctx, cmd, f.vendor)
		require.NoError(t, err)

		err = f.quotes().RejectQuote(ctx, created.QuoteID, &reason, f.organizer)
		assert.ErrorIs(t, err, errs.ErrQuoteNotRejectable)
	})
}

func TestReviseQuote(t *testing.T) {
	ctx := context.Background()
	reason := "too expensive"

	t.Run("revision of a rejected quote starts a new version in the chain", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)
		require.NoError(t, f.quotes().RejectQuote(ctx, q.ID(), &reason, f.organizer))

		result, err := f.quotes().ReviseQuote(ctx, q.ID(), singleItemCommand(1200), f.vendor)
		require.NoError(t, err)

		rev := f.uow.StoredQuote(result.QuoteID)
		require.NotNil(t, rev)
		assert.Equal(t, domquote.StatusDraft, rev.Status())
		assert.Equal(t, 2, rev.Version())
		require.NotNil(t, rev.PreviousQuoteID())
		assert.Equal(t, q.ID(), *rev.PreviousQuoteID())
		assert.Equal(t, "1200.00", rev.Total().String())
		assert.Equal(t, "Q-2026-00002", rev.Number())
	})

	t.Run("open quote cannot be revised", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)

		_, err := f.quotes().ReviseQuote(ctx, q.ID(), singleItemCommand(1200), f.vendor)
		assert.ErrorIs(t, err, errs.ErrQuoteNotRevisable)
	})

	t.Run("superseded version cannot be accepted", func(t *testing.T) {
		f := newWorkflowFixture()
		r := f.seedPendingRequest(t)
		q := f.seedSentQuote(t, r)
		require.NoError(t, f.quotes().RejectQuote(ctx, q.ID(), &reason, f.organizer))

		revised, err := f.quotes().ReviseQuote(ctx, q.ID(), singleItemCommand(1200), f.vendor)
		require.NoError(t, err)
		require.NoError(t, f.quotes().SendQuote(ctx, revised.QuoteID, f.vendor))

		_, err = f.quotes().AcceptQuote(ctx, q.ID(), f.organizer)
		assert.ErrorIs(t, err, errs.ErrQuoteNotAcceptable)

		result, err := f.quotes().AcceptQuote(ctx, revised.QuoteID, f.organizer)
		require.NoError(t, err)
		assert.Equal(t, domquote.StatusAccepted, f.uow.StoredQuote(revised.QuoteID).Status())
		assert.NotNil(t, f.uow.StoredBooking(result.BookingID))
	})
}
