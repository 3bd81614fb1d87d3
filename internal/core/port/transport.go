package port

import (
	"context"

	"chatbot/internal/core/domain"
)

type EventSource interface {
	// NextEvent blocks until the next inbound event arrives. It returns io.EOF once the stream has ended.
	NextEvent(ctx context.Context) (domain.Event, error)
}

type Transport interface {
	EventSource
	domain.Replier
	// Connect establishes the connection and joins the configured channels.
	Connect(ctx context.Context) error
	// Close shuts the connection down, ending the event stream.
	Close() error
}
