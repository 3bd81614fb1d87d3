package port

import (
	"context"

	"chatbot/internal/core/domain"
)

type MessageHandler interface {
	// HandleMessage processes a plain chat message.
	HandleMessage(ctx context.Context, message domain.Message) error
}

type CommandHandler interface {
	// HandleCommand processes a command addressed to the name it was registered under.
	HandleCommand(ctx context.Context, command domain.Command) error
}

type MessageHandlerFunc func(ctx context.Context, message domain.Message) error

func (f MessageHandlerFunc) HandleMessage(ctx context.Context, message domain.Message) error {
	return f(ctx, message)
}

type CommandHandlerFunc func(ctx context.Context, command domain.Command) error

func (f CommandHandlerFunc) HandleCommand(ctx context.Context, command domain.Command) error {
	return f(ctx, command)
}

type Registry interface {
	// OnMessage appends a handler for plain messages.
	OnMessage(handler MessageHandler)
	// OnCommand appends a handler for the command with the given name.
	OnCommand(name string, handler CommandHandler)
	// HasCommand reports whether at least one handler is registered for name.
	HasCommand(name string) bool
	// InvokeMessage runs every message handler in registration order.
	InvokeMessage(ctx context.Context, message domain.Message)
	// InvokeCommand runs every handler registered for the command's name in registration order.
	InvokeCommand(ctx context.Context, command domain.Command) error
	// Commands returns the sorted names of all registered commands.
	Commands() []string
}

type Command interface {
	CommandHandler
	// GetCommand retrieves the command name the handler is registered under.
	GetCommand() string
}
