package request

import (
	"errors"
	"time"

	"eventmarket/internal/domain/money"
)

var (
	ErrInvalidBudgetRange = errors.New("budget max must be >= budget min")
	ErrNegativeBudget     = errors.New("budget cannot be negative")
	ErrEndBeforeStart     = errors.New("event end must not precede event start")
)

// BudgetRange is the organizer's optional min/max budget for the service.
// Either bound may be absent.
type BudgetRange struct {
	min *money.Money
	max *money.Money
}

func NewBudgetRange(min, max *money.Money) (BudgetRange, error) {
	if min != nil && min.IsNegative() {
		return BudgetRange{}, ErrNegativeBudget
	}
	if max != nil && max.IsNegative() {
		return BudgetRange{}, ErrNegativeBudget
	}
	if min != nil && max != nil && max.LessThan(*min) {
		return BudgetRange{}, ErrInvalidBudgetRange
	}
	return BudgetRange{min: min, max: max}, nil
}

func (b BudgetRange) Min() *money.Money { return b.min }
func (b BudgetRange) Max() *money.Money { return b.max }

// EventWindow is the requested event date span; End is absent for
// single-day events.
type EventWindow struct {
	start time.Time
	end   *time.Time
}

func NewEventWindow(start time.Time, end *time.Time) (EventWindow, error) {
	if end != nil && end.Before(start) {
		return EventWindow{}, ErrEndBeforeStart
	}
	return EventWindow{start: start, end: end}, nil
}

func (w EventWindow) Start() time.Time { return w.start }
func (w EventWindow) End() *time.Time  { return w.end }

// FinishedBy reports whether the event is over at the given instant, using
// the start date when no end is set.
func (w EventWindow) FinishedBy(now time.Time) bool {
	if w.end != nil {
		return !now.Before(*w.end)
	}
	return !now.Before(w.start)
}
