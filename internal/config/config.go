package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	TransportTwitch   = "twitch"
	TransportTelegram = "telegram"
)

type Config struct {
	Bot        BotConfig        `mapstructure:"bot"`
	Transport  TransportConfig  `mapstructure:"transport"`
	Twitch     TwitchConfig     `mapstructure:"twitch"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Handler    HandlerConfig    `mapstructure:"handler"`
	Auth       AuthConfig       `mapstructure:"auth"`
}

type BotConfig struct {
	LogLevel  string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	PrettyLog bool   `mapstructure:"pretty_log"`
}

type TransportConfig struct {
	Kind string `mapstructure:"kind" validate:"required,oneof=twitch telegram"`
}

type TwitchConfig struct {
	Nickname   string   `mapstructure:"nickname" validate:"required"`
	Token      string   `mapstructure:"token" validate:"required"`
	Channels   []string `mapstructure:"channels" validate:"required,min=1,dive,required"`
	BufferSize int      `mapstructure:"buffer_size" validate:"gte=1"`
}

type TelegramConfig struct {
	BotToken   string `mapstructure:"bot_token" validate:"required"`
	BufferSize int    `mapstructure:"buffer_size" validate:"gte=1"`
}

type OpenRouterConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

type HandlerConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type AuthConfig struct {
	Admins []string `mapstructure:"admins"`
}

var validate = validator.New()

// Load reads the config file at path (or config.toml in the working directory when
// path is empty). Environment variables override file values, e.g. TWITCH_TOKEN for
// twitch.token, and are also read from an optional .env file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range []string{"twitch.token", "telegram.bot_token", "openrouter.api_key"} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	log.Info().Msg("reading config file...")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse()
}

// Parse unmarshals and validates the values currently held by viper.
func Parse() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(struct {
		Bot       BotConfig
		Transport TransportConfig
		Handler   HandlerConfig
	}{c.Bot, c.Transport, c.Handler}); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var err error
	switch c.Transport.Kind {
	case TransportTwitch:
		err = validate.Struct(c.Twitch)
	case TransportTelegram:
		err = validate.Struct(c.Telegram)
	}

	if err != nil {
		return fmt.Errorf("invalid %s config: %w", c.Transport.Kind, err)
	}

	return nil
}

// LogLevel maps bot.log_level to a zerolog level, defaulting to info.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Bot.LogLevel)
	if err != nil || c.Bot.LogLevel == "" {
		return zerolog.InfoLevel
	}

	return level
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("transport.kind", TransportTwitch)
	viper.SetDefault("twitch.buffer_size", 100)
	viper.SetDefault("telegram.buffer_size", 100)
	viper.SetDefault("openrouter.model", "openai/gpt-4.1-mini")
	viper.SetDefault("handler.timeout", "30s")
}
