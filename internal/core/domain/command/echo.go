package command

import (
	"context"

	"chatbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type Echo struct {
	command string
}

func NewEcho(command string) *Echo {
	return &Echo{command: command}
}

func (e *Echo) GetCommand() string {
	return e.command
}

func (e *Echo) HandleCommand(ctx context.Context, command domain.Command) error {
	text := command.ArgString()
	if text == "" {
		text = "please input some text"
	}

	err := command.Reply(ctx, text)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("command", e.GetCommand()).Msg(domain.ErrSendFailure.Error())
		return err
	}

	return nil
}
