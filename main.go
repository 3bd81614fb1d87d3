package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"chatbot/internal/adapters/generator"
	"chatbot/internal/adapters/transport"
	"chatbot/internal/config"
	"chatbot/internal/core/domain"
	"chatbot/internal/core/domain/command"
	"chatbot/internal/core/port"
	"chatbot/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the config file")
	flag.Parse()

	log.Info().Msg("starting chatbot...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel())
	if cfg.Bot.PrettyLog {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	t, err := newTransport(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing transport")
	}

	client := service.NewClient(t)

	authorizer := service.NewAuthorizer(cfg.Auth.Admins)

	client.OnMessageFunc(command.LogMessage)

	client.Register(command.NewGood("test"))
	client.Register(command.NewEcho("echo"))
	client.Register(command.NewList(client.Registry(), "commands"))

	debugCmd := command.NewDebug("debug")
	client.OnCommand(debugCmd.GetCommand(), service.RequireAuthorized(authorizer, debugCmd))

	if cfg.OpenRouter.APIKey != "" {
		orGenerator := generator.NewOpenRouterGenerator(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model,
			cfg.OpenRouter.SystemPrompt)
		client.Register(command.NewAsk(orGenerator, cfg.Handler.Timeout, "ask"))
	} else {
		log.Info().Msg("openrouter.api_key not set, !ask disabled")
	}

	log.Info().Str("transport", cfg.Transport.Kind).Msg("bot listening")

	err = client.Run(ctx)
	if err != nil && !errors.Is(err, domain.ErrStreamEnded) {
		log.Fatal().Err(err).Msg("client stopped")
	}

	log.Info().Msg("chatbot stopped")
}

func newTransport(cfg *config.Config) (port.Transport, error) {
	switch cfg.Transport.Kind {
	case config.TransportTelegram:
		return transport.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.BufferSize)
	default:
		log.Info().Strs("channels", cfg.Twitch.Channels).Msg("monitoring twitch channels")
		return transport.NewTwitch(cfg.Twitch.Nickname, cfg.Twitch.Token, cfg.Twitch.Channels,
			cfg.Twitch.BufferSize), nil
	}
}
