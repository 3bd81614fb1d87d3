package domain

import (
	"slices"
	"strings"
)

// ParseCommandName returns the first token of text without its marker when text is a
// command. A lone marker is not a command.
func ParseCommandName(text string) (string, bool) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", false
	}

	first := parts[0]
	if !strings.HasPrefix(first, CommandMarker) || len(first) <= len(CommandMarker) {
		return "", false
	}

	return strings.TrimPrefix(first, CommandMarker), true
}

// ParseCommandArgs returns every token after the first, in order.
func ParseCommandArgs(text string) []string {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return []string{}
	}

	return parts[1:]
}

// ParseCommand reinterprets a message as a command, if its text has the command form.
func ParseCommand(message Message) (Command, bool) {
	name, ok := ParseCommandName(message.Text)
	if !ok {
		return Command{}, false
	}

	return Command{
		Channel:   message.Channel,
		Username:  message.Username,
		MessageID: message.ID,
		Name:      name,
		Args:      ParseCommandArgs(message.Text),
		replier:   message.replier,
	}, true
}

// Text renders the command in canonical form. Whitespace between tokens collapses to
// a single space.
func (c Command) Text() string {
	sb := &strings.Builder{}
	sb.WriteString(CommandMarker)
	sb.WriteString(c.Name)

	for _, arg := range c.Args {
		sb.WriteString(" ")
		sb.WriteString(arg)
	}

	return sb.String()
}

// Message converts the command back into a message carrying its canonical text.
func (c Command) Message() Message {
	return Message{
		ID:       c.MessageID,
		Channel:  c.Channel,
		Username: c.Username,
		Text:     c.Text(),
		replier:  c.replier,
	}
}

// ArgString joins the arguments with single spaces.
func (c Command) ArgString() string {
	return strings.Join(c.Args, " ")
}

// Clone returns a copy whose Args can be modified independently.
func (c Command) Clone() Command {
	c.Args = slices.Clone(c.Args)
	if c.Args == nil {
		c.Args = []string{}
	}

	return c
}
