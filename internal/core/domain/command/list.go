package command

import (
	"context"
	"fmt"
	"strings"

	"chatbot/internal/core/domain"
	"chatbot/internal/core/port"

	"github.com/samber/lo"
)

// List replies with every command registered in the session.
type List struct {
	registry port.Registry
	command  string
}

func NewList(registry port.Registry, command string) *List {
	return &List{registry: registry, command: command}
}

func (l *List) GetCommand() string {
	return l.command
}

func (l *List) HandleCommand(ctx context.Context, command domain.Command) error {
	names := lo.Map(l.registry.Commands(), func(name string, _ int) string {
		return domain.CommandMarker + name
	})

	err := command.Reply(ctx, "commands: "+strings.Join(names, ", "))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
