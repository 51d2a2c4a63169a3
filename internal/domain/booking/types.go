package booking

import "eventmarket/internal/domain/money"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentStatus is derived from amount paid relative to deposit and total;
// it is never set directly by callers.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentPartial     PaymentStatus = "partial"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus maps the running paid amount onto the ledger status.
// Thresholds: below the deposit the booking is still pending; exactly the
// deposit is deposit_paid; between deposit and total is partial; at or above
// the total is paid. A zero deposit makes any positive paid amount partial.
// Refunded is only reached through ApplyRefund when the balance returns to
// zero.
func DerivePaymentStatus(paid, deposit, total money.Money) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total) && total.IsPositive():
		return PaymentPaid
	case deposit.IsPositive() && paid.GreaterThan(deposit):
		return PaymentPartial
	case deposit.IsPositive() && paid.Equal(deposit):
		return PaymentDepositPaid
	case !deposit.IsPositive() && paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}
