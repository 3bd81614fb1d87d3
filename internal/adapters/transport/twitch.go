package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"chatbot/internal/core/domain"

	"github.com/gempir/go-twitch-irc/v4"
	"github.com/rs/zerolog/log"
)

const DefaultBufferSize = 100

const lineBreaks = "\r\n"

var lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// ircClient is the part of *twitch.Client the transport drives.
type ircClient interface {
	OnConnect(callback func())
	OnPrivateMessage(callback func(message twitch.PrivateMessage))
	OnNoticeMessage(callback func(message twitch.NoticeMessage))
	OnReconnectMessage(callback func(message twitch.ReconnectMessage))
	Join(channels ...string)
	Connect() error
	Disconnect() error
	Say(channel, text string)
	Reply(channel, parentMsgID, text string)
}

// Twitch reads chat from Twitch IRC. Callbacks of the IRC client are queued and
// handed out one at a time through NextEvent.
type Twitch struct {
	client    ircClient
	channels  []string
	events    chan domain.Event
	errs      chan error
	done      chan struct{}
	ready     chan struct{}
	readyOnce sync.Once
	closeOnce sync.Once
	connected atomic.Bool
}

func NewTwitch(nickname, token string, channels []string, bufferSize int) *Twitch {
	client := twitch.NewClient(nickname, "oauth:"+strings.TrimPrefix(token, "oauth:"))
	client.Capabilities = []string{twitch.TagsCapability, twitch.CommandsCapability, twitch.MembershipCapability}

	return newTwitch(client, channels, bufferSize)
}

func newTwitch(client ircClient, channels []string, bufferSize int) *Twitch {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Twitch{
		client:   client,
		channels: channels,
		events:   make(chan domain.Event, bufferSize),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
		ready:    make(chan struct{}),
	}
}

// Connect joins the configured channels and returns once the client is logged in.
// The IRC client reconnects on its own after network failures.
func (t *Twitch) Connect(ctx context.Context) error {
	t.client.OnConnect(func() {
		select {
		case <-t.done:
			log.Info().Msg("connected after close, disconnecting")
			_ = t.client.Disconnect()
			return
		default:
		}

		log.Info().Msg("connected to twitch irc")
		t.connected.Store(true)
		t.readyOnce.Do(func() { close(t.ready) })
	})

	t.client.OnReconnectMessage(func(_ twitch.ReconnectMessage) {
		log.Info().Msg("reconnecting to twitch irc")
	})

	t.client.OnPrivateMessage(func(message twitch.PrivateMessage) {
		t.enqueue(privateMessageEvent(message))
	})

	t.client.OnNoticeMessage(func(message twitch.NoticeMessage) {
		t.enqueue(noticeEvent(message))
	})

	for _, channel := range t.channels {
		t.client.Join(channelName(channel))
		log.Info().Str("channel", channel).Msg("joined channel")
	}

	go func() {
		err := t.client.Connect()
		t.connected.Store(false)

		if err == nil || errors.Is(err, twitch.ErrClientDisconnected) {
			err = io.EOF
		} else {
			log.Err(err).Msg("twitch irc connection error")
		}

		select {
		case t.errs <- err:
		default:
		}
	}()

	select {
	case <-t.ready:
		return nil
	case err := <-t.errs:
		if errors.Is(err, io.EOF) {
			return domain.ErrNotConnected
		}
		return fmt.Errorf("twitch connect: %w", err)
	case <-ctx.Done():
		if err := t.Close(); err != nil {
			log.Err(err).Msg("failed to stop twitch irc client")
		}
		return ctx.Err()
	}
}

func (t *Twitch) NextEvent(ctx context.Context) (domain.Event, error) {
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

func (t *Twitch) SendReply(ctx context.Context, channel, replyTo, text string) error {
	name, text, err := t.checkSend(ctx, channel, text)
	if err != nil {
		return err
	}

	if strings.ContainsAny(replyTo, lineBreaks+" ;") {
		return domain.ErrInvalidReplyTarget
	}

	if replyTo == "" {
		t.client.Say(name, text)
		return nil
	}

	t.client.Reply(name, replyTo, text)

	return nil
}

func (t *Twitch) Send(ctx context.Context, channel, text string) error {
	return t.SendReply(ctx, channel, "", text)
}

func (t *Twitch) Close() error {
	var err error

	t.closeOnce.Do(func() {
		close(t.done)
		log.Info().Msg("disconnecting from twitch irc")

		err = t.client.Disconnect()
		if errors.Is(err, twitch.ErrConnectionIsNotOpen) {
			err = nil
		}
	})

	return err
}

// checkSend validates the target and flattens the text onto a single line. The IRC
// client writes text verbatim into the raw PRIVMSG line, so a line break would end
// the message and start a new command.
func (t *Twitch) checkSend(ctx context.Context, channel, text string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	name := channelName(channel)
	if name == "" || strings.ContainsAny(name, lineBreaks+" ") {
		return "", "", domain.ErrInvalidChannel
	}

	text = strings.TrimSpace(lineBreakReplacer.Replace(text))
	if text == "" {
		return "", "", domain.ErrEmptyText
	}

	if !t.connected.Load() {
		return "", "", domain.ErrNotConnected
	}

	return name, text, nil
}

// enqueue blocks while the buffer is full, which stalls the IRC reader until the
// dispatcher catches up.
func (t *Twitch) enqueue(event domain.Event) {
	select {
	case t.events <- event:
	case <-t.done:
	}
}

func privateMessageEvent(message twitch.PrivateMessage) domain.Event {
	return domain.Event{
		Kind:    domain.EventKindMessage,
		Tags:    message.Tags,
		Source:  message.User.Name,
		Channel: message.Channel,
		Text:    message.Message,
	}
}

func noticeEvent(message twitch.NoticeMessage) domain.Event {
	return domain.Event{
		Kind:    domain.EventKindNotice,
		Tags:    message.Tags,
		Channel: message.Channel,
		Text:    message.Message,
	}
}

func channelName(channel string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(channel), "#"))
}
