//go:build unit

package cancellation_test

import (
	"testing"
	"time"

	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	t.Run("default schedule round-trips", func(t *testing.T) {
		p, err := cancellation.ParseSchedule(cancellation.DefaultSchedule)
		require.NoError(t, err)
		assert.Len(t, p.Tiers(), 4)
		assert.Equal(t, cancellation.DefaultSchedule, p.Schedule())
	})

	t.Run("invalid schedules rejected", func(t *testing.T) {
		cases := []string{
			"",
			"60:100,90:75",   // not descending
			"60:100,60:75",   // duplicate tier
			"60:101",         // pct above 100
			"60:-5",          // negative pct
			"-1:100",         // negative days
			"60-100",         // malformed pair
			"abc:50",
		}
		for _, s := range cases {
			_, err := cancellation.ParseSchedule(s)
			assert.ErrorIs(t, err, cancellation.ErrInvalidPolicyTiers, "schedule %q", s)
		}
	})
}

func TestRefundPercent(t *testing.T) {
	p := cancellation.MustParseSchedule(cancellation.DefaultSchedule)

	cases := []struct {
		leadDays int
		wantPct  string
	}{
		{60, "100"},
		{59, "75"},
		{30, "75"},
		{29, "50"},
		{14, "50"},
		{13, "25"},
		{7, "25"},
		{6, "0"},
		{0, "0"},
		{365, "100"},
	}
	for _, tc := range cases {
		got := p.RefundPercent(tc.leadDays)
		assert.Equal(t, tc.wantPct, got.String(), "lead days %d", tc.leadDays)
	}
}

func TestLeadDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("whole days truncate", func(t *testing.T) {
		// 10 days minus one hour is 9 whole days
		event := now.Add(10*24*time.Hour - time.Hour)
		assert.Equal(t, 9, cancellation.LeadDays(event, now))
	})

	t.Run("exact boundary", func(t *testing.T) {
		event := now.Add(60 * 24 * time.Hour)
		assert.Equal(t, 60, cancellation.LeadDays(event, now))
	})

	t.Run("event already started", func(t *testing.T) {
		assert.Equal(t, 0, cancellation.LeadDays(now.Add(-time.Hour), now))
	})
}

func TestComputeSettlement(t *testing.T) {
	p := cancellation.MustParseSchedule(cancellation.DefaultSchedule)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ten days out refunds a quarter", func(t *testing.T) {
		event := now.Add(10 * 24 * time.Hour)
		got := cancellation.ComputeSettlement(p, event, now, money.FromInt(450))

		assert.Equal(t, 10, got.LeadDays)
		assert.Equal(t, "25", got.RefundPct.String())
		assert.Equal(t, "112.50", got.RefundAmount.String())
		assert.Equal(t, "337.50", got.PenaltyAmount.String())
	})

	t.Run("split sums to amount paid at every tier boundary", func(t *testing.T) {
		odd, err := money.FromString("999.99")
		require.NoError(t, err)
		amounts := []money.Money{money.FromInt(450), money.FromInt(1500), odd}

		for _, days := range []int{60, 59, 30, 29, 14, 13, 7, 6} {
			event := now.Add(time.Duration(days) * 24 * time.Hour)
			for _, amount := range amounts {
				got := cancellation.ComputeSettlement(p, event, now, amount)
				assert.Equal(t, days, got.LeadDays)
				assert.True(t, got.RefundAmount.Add(got.PenaltyAmount).Equal(amount),
					"lead %d amount %s", days, amount)
				assert.False(t, got.RefundAmount.IsNegative())
				assert.False(t, got.PenaltyAmount.IsNegative())
			}
		}
	})

	t.Run("nothing paid splits to zero", func(t *testing.T) {
		event := now.Add(90 * 24 * time.Hour)
		got := cancellation.ComputeSettlement(p, event, now, money.Zero())

		assert.True(t, got.RefundAmount.IsZero())
		assert.True(t, got.PenaltyAmount.IsZero())
	})
}

func TestNewCancellation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := cancellation.MustParseSchedule(cancellation.DefaultSchedule)
	settlement := cancellation.ComputeSettlement(p, now.Add(40*24*time.Hour), now, money.FromInt(1000))

	t.Run("records the settlement immutably", func(t *testing.T) {
		c, err := cancellation.New(cancellation.NewParams{
			BookingID:   uuid.New(),
			CancelledBy: uuid.New(),
			Initiator:   party.InitiatorOrganizer,
			Reason:      "venue unavailable",
			Settlement:  settlement,
		}, now)
		require.NoError(t, err)

		assert.Equal(t, 40, c.LeadDays())
		assert.Equal(t, "750.00", c.RefundAmount().String())
		assert.Equal(t, "250.00", c.PenaltyAmount().String())
		assert.Equal(t, now, c.CancelledAt())
	})

	t.Run("reason required", func(t *testing.T) {
		_, err := cancellation.New(cancellation.NewParams{
			BookingID:  uuid.New(),
			Settlement: settlement,
		}, now)
		assert.ErrorIs(t, err, cancellation.ErrEmptyReason)
	})
}
