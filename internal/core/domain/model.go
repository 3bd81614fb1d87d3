package domain

import (
	"context"
	"fmt"
)

type EventKind string

const (
	EventKindMessage EventKind = "message"
	EventKindNotice  EventKind = "notice"
	EventKindOther   EventKind = "other"
)

// IDTag is the event tag carrying the message id replies are threaded to.
const IDTag = "id"

// DisplayNameTag carries the sender's free-form display name, when the transport has one.
const DisplayNameTag = "display-name"

// Event is one inbound transport event before it is normalized into a Message.
type Event struct {
	Kind    EventKind
	Tags    map[string]string
	Source  string
	Channel string
	Text    string
}

// Replier is the outbound half of a transport, shared by every Message and Command
// built during a session.
type Replier interface {
	// SendReply sends text to channel as a threaded reply to the message replyTo.
	SendReply(ctx context.Context, channel, replyTo, text string) error
	// Send sends text to channel without a reply target.
	Send(ctx context.Context, channel, text string) error
}

type Message struct {
	ID       string
	Channel  string
	Username string
	Text     string

	replier Replier
}

// NewMessage normalizes a content event. It reports false for non-content events and
// for events missing any of id, source, channel or text.
func NewMessage(replier Replier, event Event) (Message, bool) {
	if event.Kind != EventKindMessage {
		return Message{}, false
	}

	id := event.Tags[IDTag]
	if id == "" || event.Source == "" || event.Channel == "" || event.Text == "" {
		return Message{}, false
	}

	return Message{
		ID:       id,
		Channel:  event.Channel,
		Username: event.Source,
		Text:     event.Text,
		replier:  replier,
	}, true
}

// Reply sends text as a threaded reply to this message.
func (m Message) Reply(ctx context.Context, text string) error {
	return reply(ctx, m.replier, m.Channel, m.ID, text)
}

// Say sends text to the message's channel without threading it.
func (m Message) Say(ctx context.Context, text string) error {
	if m.replier == nil {
		return fmt.Errorf("%w: %w", ErrSendFailure, ErrNotConnected)
	}

	if err := m.replier.Send(ctx, m.Channel, text); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailure, err)
	}

	return nil
}

func (m Message) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.Channel, m.Username, m.Text)
}

func (m Message) GoString() string {
	return fmt.Sprintf("%s %s | %s: %s", m.ID, m.Channel, m.Username, m.Text)
}

type Command struct {
	Channel   string
	Username  string
	MessageID string
	Name      string
	Args      []string

	replier Replier
}

// Reply sends text as a threaded reply to the message the command was parsed from.
func (c Command) Reply(ctx context.Context, text string) error {
	return reply(ctx, c.replier, c.Channel, c.MessageID, text)
}

func reply(ctx context.Context, r Replier, channel, replyTo, text string) error {
	if r == nil {
		return fmt.Errorf("%w: %w", ErrSendFailure, ErrNotConnected)
	}

	if err := r.SendReply(ctx, channel, replyTo, text); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailure, err)
	}

	return nil
}
