package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"chatbot/internal/core/domain"
	"chatbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Dispatcher pulls events from a transport one at a time and routes each of them to
// either the command handlers or the message handlers of a registry.
type Dispatcher struct {
	source   port.EventSource
	registry port.Registry
	replier  domain.Replier
}

func NewDispatcher(source port.EventSource, registry port.Registry, replier domain.Replier) *Dispatcher {
	return &Dispatcher{source: source, registry: registry, replier: replier}
}

// Run dispatches events until the stream ends, the context is cancelled or the
// transport fails. A finished stream is reported as domain.ErrStreamEnded.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		event, err := d.source.NextEvent(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				log.Info().Msg("event stream ended")
				return domain.ErrStreamEnded
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				return fmt.Errorf("next event: %w", err)
			}
		}

		d.Dispatch(ctx, event)
	}
}

// Dispatch handles a single event synchronously.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.Event) {
	message, ok := domain.NewMessage(d.replier, event)
	if !ok {
		log.Debug().Str("kind", string(event.Kind)).Str("channel", event.Channel).Msg("dropping event")
		return
	}

	l := log.With().
		Str("dispatchId", newDispatchID()).
		Str("messageId", message.ID).
		Str("channel", message.Channel).
		Logger()
	ctx = l.WithContext(ctx)

	command, ok := domain.ParseCommand(message)
	if ok && d.registry.HasCommand(command.Name) {
		l.Debug().Str("command", command.Name).Strs("args", command.Args).Msg("dispatching command")

		if err := d.registry.InvokeCommand(ctx, command); err != nil {
			l.Error().Err(err).Msg("failed to invoke command handlers")
		}

		return
	}

	if ok {
		l.Debug().Str("command", command.Name).Msg("no handler for command, falling back to message handlers")
	}

	d.registry.InvokeMessage(ctx, message)
}

func newDispatchID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}

	return id.String()
}
