//go:build unit

package booking_test

import (
	"testing"
	"time"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/domain/money"
	"eventmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBooking(t *testing.T) (*booking.Booking, *builder.BookingBuilder) {
	t.Helper()
	b := builder.NewBookingBuilder()
	actual, err := b.BuildDomain()
	require.NoError(t, err)
	return actual, b
}

func TestNewFromQuote(t *testing.T) {
	actual, b := buildBooking(t)

	assert.NotEqual(t, uuid.Nil, actual.ID())
	assert.Equal(t, booking.StatusConfirmed, actual.Status())
	assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
	assert.Equal(t, "B-2026-00001", actual.Number())

	assert.Equal(t, "1500.00", actual.TotalAmount().String())
	assert.Equal(t, "450.00", actual.DepositAmount().String())
	assert.True(t, actual.AmountPaid().IsZero())
	assert.Equal(t, "1500.00", actual.AmountDue().String())

	// commission frozen at creation: 1500 * 0.15
	assert.Equal(t, "225.00", actual.CommissionAmount().String())
	assert.Equal(t, "1275.00", actual.VendorPayout().String())
	assert.Equal(t, b.PolicySchedule, actual.PolicySchedule())
}

func TestApplyPayment(t *testing.T) {
	t.Run("deposit payment reaches deposit_paid", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(450), b.Now))
		assert.Equal(t, booking.PaymentDepositPaid, actual.PaymentStatus())
		assert.Equal(t, "1050.00", actual.AmountDue().String())
	})

	t.Run("below deposit stays pending", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(100), b.Now))
		assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
	})

	t.Run("between deposit and total is partial", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(800), b.Now))
		assert.Equal(t, booking.PaymentPartial, actual.PaymentStatus())
	})

	t.Run("full balance is paid", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(450), b.Now))
		require.NoError(t, actual.ApplyPayment(money.FromInt(1050), b.Now))
		assert.Equal(t, booking.PaymentPaid, actual.PaymentStatus())
		assert.True(t, actual.AmountDue().IsZero())
	})

	t.Run("overpayment rejected, never clamped", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(1000), b.Now))
		err := actual.ApplyPayment(money.FromInt(501), b.Now)
		assert.ErrorIs(t, err, booking.ErrOverpayment)
		// ledger untouched on rejection
		assert.Equal(t, "1000.00", actual.AmountPaid().String())
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		actual, b := buildBooking(t)

		assert.ErrorIs(t, actual.ApplyPayment(money.Zero(), b.Now), booking.ErrNonPositiveAmount)
		assert.ErrorIs(t, actual.ApplyPayment(money.FromInt(-10), b.Now), booking.ErrNonPositiveAmount)
	})

	t.Run("cancelled booking rejects payments", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.Cancel(b.Now))
		assert.ErrorIs(t, actual.ApplyPayment(money.FromInt(100), b.Now), booking.ErrNotPayable)
	})
}

func TestDerivePaymentStatus(t *testing.T) {
	deposit := money.FromInt(450)
	total := money.FromInt(1500)

	cases := []struct {
		name    string
		paid    money.Money
		deposit money.Money
		want    booking.PaymentStatus
	}{
		{"nothing paid", money.Zero(), deposit, booking.PaymentPending},
		{"below deposit", money.FromInt(100), deposit, booking.PaymentPending},
		{"exactly the deposit", money.FromInt(450), deposit, booking.PaymentDepositPaid},
		{"between deposit and total", money.FromInt(800), deposit, booking.PaymentPartial},
		{"full balance", money.FromInt(1500), deposit, booking.PaymentPaid},
		{"zero deposit, nothing paid", money.Zero(), money.Zero(), booking.PaymentPending},
		{"zero deposit, part paid", money.FromInt(100), money.Zero(), booking.PaymentPartial},
		{"zero deposit, full balance", money.FromInt(1500), money.Zero(), booking.PaymentPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.DerivePaymentStatus(tc.paid, tc.deposit, total))
		})
	}
}

func TestApplyRefund(t *testing.T) {
	t.Run("partial refund re-derives status", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(1500), b.Now))
		require.NoError(t, actual.ApplyRefund(money.FromInt(700), b.Now))

		assert.Equal(t, "800.00", actual.AmountPaid().String())
		assert.Equal(t, booking.PaymentPartial, actual.PaymentStatus())
	})

	t.Run("refund to zero marks refunded", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(450), b.Now))
		require.NoError(t, actual.ApplyRefund(money.FromInt(450), b.Now))

		assert.True(t, actual.AmountPaid().IsZero())
		assert.Equal(t, booking.PaymentRefunded, actual.PaymentStatus())
	})

	t.Run("refund beyond paid rejected", func(t *testing.T) {
		actual, b := buildBooking(t)

		require.NoError(t, actual.ApplyPayment(money.FromInt(450), b.Now))
		assert.ErrorIs(t, actual.ApplyRefund(money.FromInt(451), b.Now), booking.ErrRefundExceedsPaid)
	})
}

func TestComplete(t *testing.T) {
	t.Run("blocked before the event ends", func(t *testing.T) {
		actual, b := buildBooking(t)

		err := actual.Complete(nil, b.Now)
		assert.ErrorIs(t, err, booking.ErrEventNotFinished)
	})

	t.Run("allowed once the event has finished", func(t *testing.T) {
		actual, _ := buildBooking(t)

		after := actual.Window().Start().Add(24 * time.Hour)
		notes := "delivered as agreed"
		require.NoError(t, actual.Complete(&notes, after))

		assert.Equal(t, booking.StatusCompleted, actual.Status())
		require.NotNil(t, actual.CompletedAt())
		assert.Equal(t, &notes, actual.CompletionNotes())
	})

	t.Run("no transition out of completed", func(t *testing.T) {
		actual, _ := buildBooking(t)

		after := actual.Window().Start().Add(24 * time.Hour)
		require.NoError(t, actual.Complete(nil, after))

		assert.ErrorIs(t, actual.Complete(nil, after), booking.ErrNotCompletable)
		assert.ErrorIs(t, actual.Cancel(after), booking.ErrNotCancellable)
	})
}

func TestCancel(t *testing.T) {
	actual, b := buildBooking(t)

	require.NoError(t, actual.Cancel(b.Now))
	assert.Equal(t, booking.StatusCancelled, actual.Status())
	require.NotNil(t, actual.CancelledAt())

	assert.ErrorIs(t, actual.Cancel(b.Now), booking.ErrNotCancellable)
}

func TestUpdateDetails(t *testing.T) {
	t.Run("permitted before the event", func(t *testing.T) {
		actual, b := buildBooking(t)

		venue := "Hilltop Garden"
		guests := 180
		require.NoError(t, actual.UpdateDetails(booking.UpdateDetailsParams{
			VenueName:  &venue,
			GuestCount: &guests,
		}, b.Now))

		assert.Equal(t, &venue, actual.VenueName())
		assert.Equal(t, &guests, actual.GuestCount())
	})

	t.Run("blocked once the event has started", func(t *testing.T) {
		actual, _ := buildBooking(t)

		venue := "too late"
		err := actual.UpdateDetails(booking.UpdateDetailsParams{VenueName: &venue}, actual.Window().Start())
		assert.ErrorIs(t, err, booking.ErrNotEditable)
	})
}

func TestIsInProgress(t *testing.T) {
	actual, b := buildBooking(t)

	assert.False(t, actual.IsInProgress(b.Now))
	assert.True(t, actual.IsInProgress(actual.Window().Start()))

	after := actual.Window().Start().Add(24 * time.Hour)
	require.NoError(t, actual.Complete(nil, after))
	assert.False(t, actual.IsInProgress(after))
}

func TestPaymentEntities(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("charge", func(t *testing.T) {
		p, err := booking.NewCharge(booking.NewChargeParams{
			BookingID: uuid.New(),
			Number:    "P-2026-00001",
			Amount:    money.FromInt(450),
			Currency:  "TRY",
			IsDeposit: true,
		}, now)
		require.NoError(t, err)

		assert.Equal(t, booking.TxSucceeded, p.TxStatus())
		assert.True(t, p.IsDeposit())
		assert.False(t, p.IsRefund())
	})

	t.Run("refund requires original payment", func(t *testing.T) {
		_, err := booking.NewRefund(booking.NewRefundParams{
			BookingID: uuid.New(),
			Number:    "P-2026-00002",
			Amount:    money.FromInt(100),
			Currency:  "TRY",
		}, now)
		assert.ErrorIs(t, err, booking.ErrRefundNeedsOriginal)
	})

	t.Run("non-positive charge rejected", func(t *testing.T) {
		_, err := booking.NewCharge(booking.NewChargeParams{
			BookingID: uuid.New(),
			Number:    "P-2026-00003",
			Amount:    money.Zero(),
			Currency:  "TRY",
		}, now)
		assert.ErrorIs(t, err, booking.ErrNonPositiveAmount)
	})
}
