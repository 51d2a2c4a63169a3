package cancellation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventmarket/internal/domain/money"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPolicyTiers = errors.New("cancellation policy tiers must be valid and strictly descending")
)

// Tier maps a minimum lead time in whole days to a refund percentage.
type Tier struct {
	MinDays   int
	RefundPct money.Percent
}

// Policy is an ordered refund schedule. Tiers are kept sorted by MinDays
// descending; lead times below every tier refund nothing.
type Policy struct {
	tiers []Tier
}

// DefaultSchedule is the platform-wide fallback refund schedule.
const DefaultSchedule = "60:100,30:75,14:50,7:25"

// ParseSchedule parses a "minDays:pct,minDays:pct,..." schedule string.
// Tiers must be strictly descending in MinDays so lookup is unambiguous.
func ParseSchedule(s string) (Policy, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 0 || s == "" {
		return Policy{}, ErrInvalidPolicyTiers
	}

	tiers := make([]Tier, 0, len(parts))
	prevDays := -1
	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 2 {
			return Policy{}, ErrInvalidPolicyTiers
		}
		days, err := strconv.Atoi(fields[0])
		if err != nil || days < 0 {
			return Policy{}, ErrInvalidPolicyTiers
		}
		if prevDays >= 0 && days >= prevDays {
			return Policy{}, ErrInvalidPolicyTiers
		}
		prevDays = days

		pctVal, err := decimal.NewFromString(fields[1])
		if err != nil {
			return Policy{}, ErrInvalidPolicyTiers
		}
		pct, err := money.NewPercent(pctVal)
		if err != nil {
			return Policy{}, ErrInvalidPolicyTiers
		}
		tiers = append(tiers, Tier{MinDays: days, RefundPct: pct})
	}
	return Policy{tiers: tiers}, nil
}

func MustParseSchedule(s string) Policy {
	p, err := ParseSchedule(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Policy) Tiers() []Tier { return p.tiers }

// Schedule serializes the policy back into its canonical string form.
func (p Policy) Schedule() string {
	parts := make([]string, 0, len(p.tiers))
	for _, t := range p.tiers {
		parts = append(parts, fmt.Sprintf("%d:%s", t.MinDays, t.RefundPct.String()))
	}
	return strings.Join(parts, ",")
}

// RefundPercent looks up the refund percentage for a lead time in whole
// days. Lead times below the lowest tier refund nothing.
func (p Policy) RefundPercent(leadDays int) money.Percent {
	for _, t := range p.tiers {
		if leadDays >= t.MinDays {
			return t.RefundPct
		}
	}
	return money.ZeroPercent()
}

// LeadDays is the whole number of days between now and the event start,
// truncated. Events already started yield zero.
func LeadDays(eventStart, now time.Time) int {
	d := eventStart.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// Settlement is the immutable refund/penalty split computed exactly once at
// cancellation time. Refund plus penalty always equals the amount paid.
type Settlement struct {
	LeadDays      int
	RefundPct     money.Percent
	RefundAmount  money.Money
	PenaltyAmount money.Money
}

// ComputeSettlement splits the paid balance by the policy tier matching the
// lead time at the instant of cancellation.
func ComputeSettlement(p Policy, eventStart, now time.Time, amountPaid money.Money) Settlement {
	leadDays := LeadDays(eventStart, now)
	pct := p.RefundPercent(leadDays)
	refund := amountPaid.ApplyPercent(pct)
	return Settlement{
		LeadDays:      leadDays,
		RefundPct:     pct,
		RefundAmount:  refund,
		PenaltyAmount: amountPaid.Sub(refund),
	}
}
