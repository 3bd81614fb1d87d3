package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"chatbot/internal/core/domain"
	"chatbot/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// EventRegistry keeps the handlers of one session. Handlers run in the order they
// were registered and are never removed.
type EventRegistry struct {
	mu       sync.RWMutex
	messages []port.MessageHandler
	commands map[string][]port.CommandHandler
}

func NewEventRegistry() *EventRegistry {
	return &EventRegistry{commands: make(map[string][]port.CommandHandler)}
}

func (r *EventRegistry) OnMessage(handler port.MessageHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Debug().Int("handlers", len(r.messages)+1).Msg("adding message handler to registry")
	r.messages = append(r.messages, handler)
}

func (r *EventRegistry) OnCommand(name string, handler port.CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.commands == nil {
		r.commands = make(map[string][]port.CommandHandler)
	}

	log.Info().Str("command", name).Msg("adding command handler to registry")
	r.commands[name] = append(r.commands[name], handler)
}

func (r *EventRegistry) OnMessageFunc(fn func(ctx context.Context, message domain.Message) error) {
	r.OnMessage(port.MessageHandlerFunc(fn))
}

func (r *EventRegistry) OnCommandFunc(name string, fn func(ctx context.Context, command domain.Command) error) {
	r.OnCommand(name, port.CommandHandlerFunc(fn))
}

func (r *EventRegistry) HasCommand(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands[name]) > 0
}

func (r *EventRegistry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.commands)
	slices.Sort(names)

	return names
}

func (r *EventRegistry) InvokeMessage(ctx context.Context, message domain.Message) {
	r.mu.RLock()
	handlers := slices.Clone(r.messages)
	r.mu.RUnlock()

	l := log.With().
		Str("messageId", message.ID).
		Str("channel", message.Channel).
		Logger()

	for i, handler := range handlers {
		err := safeCall(func() error {
			return handler.HandleMessage(ctx, message)
		})
		if err != nil {
			l.Warn().Err(err).Int("slot", i).Msg("message handler failed")
		}
	}
}

func (r *EventRegistry) InvokeCommand(ctx context.Context, command domain.Command) error {
	r.mu.RLock()
	handlers := slices.Clone(r.commands[command.Name])
	r.mu.RUnlock()

	if len(handlers) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCommandNotRegistered, command.Name)
	}

	l := log.With().
		Str("messageId", command.MessageID).
		Str("channel", command.Channel).
		Str("command", command.Name).
		Logger()

	for i, handler := range handlers {
		cmd := command.Clone()
		err := safeCall(func() error {
			return handler.HandleCommand(ctx, cmd)
		})
		if err != nil {
			l.Warn().Err(err).Int("slot", i).Msg("command handler failed")
		}
	}

	return nil
}

// safeCall turns a handler panic into an error so the remaining handlers still run.
func safeCall(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()

	return fn()
}
