package events

import "context"

// NoopPublisher drops every event. Used in tests and when Redis is not
// configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, string, any) {}
