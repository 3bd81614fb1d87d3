package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatbot/internal/core/domain"
	"chatbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// MessageLimit is the longest chat message Twitch accepts.
const MessageLimit = 500

// Ask forwards the command arguments to a language model and replies with its answer.
type Ask struct {
	textGenerator port.TextGenerator
	timeout       time.Duration
	command       string
}

func NewAsk(textGenerator port.TextGenerator, timeout time.Duration, command string) *Ask {
	return &Ask{
		textGenerator: textGenerator,
		timeout:       timeout,
		command:       command,
	}
}

func (a *Ask) GetCommand() string {
	return a.command
}

func (a *Ask) HandleCommand(ctx context.Context, command domain.Command) error {
	l := log.With().
		Str("messageId", command.MessageID).
		Str("channel", command.Channel).
		Str("command", a.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	promptText := command.ArgString()
	if promptText == "" {
		l.Debug().Msg(domain.ErrEmptyPrompt.Error())
		return command.Reply(ctx, "please input a prompt")
	}

	genCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	response, err := a.textGenerator.GenerateFromPrompt(genCtx, []domain.Prompt{{
		Author: domain.User,
		Prompt: command.Username + ": " + promptText,
	}})
	if err != nil {
		l.Error().Err(err).Msg("failed to generate reply")

		reply := fmt.Sprintf("failed to generate reply: %s", err)
		if errors.Is(err, context.DeadlineExceeded) {
			reply = fmt.Sprintf("no answer within %s, try again later", a.timeout)
		}

		// genCtx is done at this point, the reply goes out on the handler context
		err = command.Reply(ctx, reply)
		if err != nil {
			l.Error().Err(err).Msg(domain.ErrSendFailure.Error())
			return err
		}

		return nil
	}

	l.Debug().
		Str("model", response.Metadata.Model).
		Int("tokens", response.Metadata.TotalTokens).
		Msg("reply generated")

	err = command.Reply(ctx, truncate(response.Response, MessageLimit))
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendFailure.Error())
		return err
	}

	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit-1]) + "…"
}
