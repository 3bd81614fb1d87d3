package service

import (
	"context"
	"fmt"
	"strings"

	"chatbot/internal/core/domain"
	"chatbot/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, command domain.Command) bool
}

// AdminAuthorizer allows commands only for the listed usernames. Matching is on the
// transport's login name, never on a display name.
type AdminAuthorizer struct {
	admins []string
}

func NewAuthorizer(admins []string) *AdminAuthorizer {
	return &AdminAuthorizer{
		admins: lo.Map(admins, func(name string, _ int) string {
			return strings.ToLower(strings.TrimSpace(name))
		}),
	}
}

const forbidden = "@%s you are not allowed to use !%s."

func (a *AdminAuthorizer) IsAuthorized(ctx context.Context, command domain.Command) bool {
	if lo.Contains(a.admins, strings.ToLower(command.Username)) {
		return true
	}

	err := command.Reply(ctx, fmt.Sprintf(forbidden, command.Username, command.Name))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}

// RequireAuthorized runs handler only when the authorizer accepts the command.
func RequireAuthorized(authorizer Authorizer, handler port.CommandHandler) port.CommandHandler {
	return port.CommandHandlerFunc(func(ctx context.Context, command domain.Command) error {
		if !authorizer.IsAuthorized(ctx, command) {
			log.Debug().Str("username", command.Username).Str("command", command.Name).Msg("command not authorized")
			return nil
		}

		return handler.HandleCommand(ctx, command)
	})
}
