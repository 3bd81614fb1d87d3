package command

import (
	"context"

	"chatbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// LogMessage writes every plain chat message to the log in display form.
func LogMessage(_ context.Context, message domain.Message) error {
	log.Info().Str("messageId", message.ID).Msg(message.String())
	return nil
}
