package transport

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"chatbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	Start(ctx context.Context)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram long-polls the bot API. Chats map to channels and Telegram message ids to
// reply targets.
type Telegram struct {
	bot       TelegramBot
	events    chan domain.Event
	errs      chan error
	done      chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
	connected atomic.Bool
}

func NewTelegram(token string, bufferSize int) (*Telegram, error) {
	t := newTelegram(nil, bufferSize)

	b, err := bot.New(token, bot.WithDefaultHandler(t.handleUpdate))
	if err != nil {
		return nil, fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	t.bot = b

	return t, nil
}

func newTelegram(b TelegramBot, bufferSize int) *Telegram {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Telegram{
		bot:    b,
		events: make(chan domain.Event, bufferSize),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
}

func (t *Telegram) Connect(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.connected.Store(true)

	go func() {
		log.Info().Msg("telegram polling started")
		t.bot.Start(ctx)
		t.connected.Store(false)
		log.Info().Msg("telegram polling stopped")

		select {
		case t.errs <- io.EOF:
		default:
		}
	}()

	return nil
}

func (t *Telegram) NextEvent(ctx context.Context) (domain.Event, error) {
	select {
	case event := <-t.events:
		return event, nil
	default:
	}

	select {
	case event := <-t.events:
		return event, nil
	case err := <-t.errs:
		return domain.Event{}, err
	case <-ctx.Done():
		return domain.Event{}, ctx.Err()
	}
}

func (t *Telegram) SendReply(ctx context.Context, channel, replyTo, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyText
	}

	chatID, err := strconv.ParseInt(channel, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidChannel, channel)
	}

	if !t.connected.Load() {
		return domain.ErrNotConnected
	}

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	if replyTo != "" {
		messageID, err := strconv.Atoi(replyTo)
		if err != nil {
			return fmt.Errorf("invalid reply target %q: %w", replyTo, err)
		}

		params.ReplyParameters = &models.ReplyParameters{
			MessageID: messageID,
			ChatID:    chatID,
		}
	}

	_, err = t.bot.SendMessage(ctx, params)
	if err != nil {
		log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send telegram message")
		return err
	}

	return nil
}

func (t *Telegram) Send(ctx context.Context, channel, text string) error {
	return t.SendReply(ctx, channel, "", text)
}

func (t *Telegram) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		if t.cancel != nil {
			t.cancel()
		}
	})

	return nil
}

func (t *Telegram) handleUpdate(_ context.Context, _ *bot.Bot, update *models.Update) {
	event := updateEvent(update)

	select {
	case t.events <- event:
	case <-t.done:
	}
}

func updateEvent(update *models.Update) domain.Event {
	if update == nil || update.Message == nil {
		return domain.Event{Kind: domain.EventKindOther}
	}

	message := update.Message

	text := message.Text
	if text == "" {
		text = message.Caption
	}

	tags := map[string]string{domain.IDTag: strconv.Itoa(message.ID)}
	if message.From != nil && message.From.FirstName != "" {
		tags[domain.DisplayNameTag] = message.From.FirstName
	}

	return domain.Event{
		Kind:    domain.EventKindMessage,
		Tags:    tags,
		Source:  getUserNameOrID(message.From),
		Channel: strconv.FormatInt(message.Chat.ID, 10),
		Text:    text,
	}
}

// getUserNameOrID identifies the sender for allowlists. First names are free text, so
// users without a @username are named by their numeric id. Usernames cannot contain
// '#', so the fallback never collides with one.
func getUserNameOrID(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		if user.ID == 0 {
			return ""
		}
		return "#" + strconv.FormatInt(user.ID, 10)
	}

	return user.Username
}
