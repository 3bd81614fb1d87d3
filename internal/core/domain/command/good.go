package command

import (
	"context"
	"fmt"

	"chatbot/internal/core/domain"
)

// Good answers with a fixed reply, handy to check the bot is alive.
type Good struct {
	command string
}

func NewGood(command string) *Good {
	return &Good{command: command}
}

func (g *Good) GetCommand() string {
	return g.command
}

func (g *Good) HandleCommand(ctx context.Context, command domain.Command) error {
	if err := command.Reply(ctx, "good"); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}
