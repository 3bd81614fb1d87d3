package service

import (
	"context"
	"errors"
	"fmt"

	"chatbot/internal/core/domain"
	"chatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Client is one chat session: a transport, the handlers registered against it and
// the dispatcher connecting the two.
type Client struct {
	transport  port.Transport
	registry   *EventRegistry
	dispatcher *Dispatcher
}

func NewClient(transport port.Transport) *Client {
	registry := NewEventRegistry()

	return &Client{
		transport:  transport,
		registry:   registry,
		dispatcher: NewDispatcher(transport, registry, transport),
	}
}

func (c *Client) OnMessage(handler port.MessageHandler) {
	c.registry.OnMessage(handler)
}

func (c *Client) OnMessageFunc(fn func(ctx context.Context, message domain.Message) error) {
	c.registry.OnMessageFunc(fn)
}

func (c *Client) OnCommand(name string, handler port.CommandHandler) {
	c.registry.OnCommand(name, handler)
}

func (c *Client) OnCommandFunc(name string, fn func(ctx context.Context, command domain.Command) error) {
	c.registry.OnCommandFunc(name, fn)
}

// Register adds a named command handler under its own command name.
func (c *Client) Register(command port.Command) {
	c.registry.OnCommand(command.GetCommand(), command)
}

func (c *Client) Commands() []string {
	return c.registry.Commands()
}

func (c *Client) Registry() port.Registry {
	return c.registry
}

// Send posts text to a channel without a reply target.
func (c *Client) Send(ctx context.Context, channel, text string) error {
	if err := c.transport.Send(ctx, channel, text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendFailure, err)
	}

	return nil
}

// Run connects the transport and dispatches events until the stream ends or ctx is
// cancelled. The transport is closed before Run returns, also when connecting fails.
func (c *Client) Run(ctx context.Context) error {
	defer func() {
		if err := c.transport.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close transport")
		}
	}()

	if err := c.transport.Connect(ctx); err != nil {
		return fmt.Errorf("connect transport: %w", err)
	}

	log.Info().Strs("commands", c.Commands()).Msg("client listening")

	err := c.dispatcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
