package commands

import "context"

// Workflow topics published after successful commits. Consumers drive
// notifications and analytics; delivery is best-effort and never blocks or
// fails the command.
const (
	TopicRequestCreated  = "request.created"
	TopicRequestQuoted   = "request.quoted"
	TopicRequestExpired  = "request.expired"
	TopicQuoteSent       = "quote.sent"
	TopicQuoteAccepted   = "quote.accepted"
	TopicQuoteRejected   = "quote.rejected"
	TopicBookingCreated  = "booking.created"
	TopicBookingComplete = "booking.completed"
	TopicBookingCancel   = "booking.cancelled"
	TopicPaymentRecorded = "payment.recorded"
	TopicPaymentRefunded = "payment.refunded"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any)
}
