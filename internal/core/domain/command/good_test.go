package command

import (
	"context"
	"errors"
	"testing"

	"chatbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReplier struct {
	mock.Mock
}

func (m *MockReplier) SendReply(ctx context.Context, channel, replyTo, text string) error {
	args := m.Called(ctx, channel, replyTo, text)
	return args.Error(0)
}

func (m *MockReplier) Send(ctx context.Context, channel, text string) error {
	args := m.Called(ctx, channel, text)
	return args.Error(0)
}

func newCommand(t *testing.T, r domain.Replier, text string) domain.Command {
	t.Helper()

	msg, ok := domain.NewMessage(r, domain.Event{
		Kind:    domain.EventKindMessage,
		Tags:    map[string]string{domain.IDTag: "42"},
		Source:  "bob",
		Channel: "#x",
		Text:    text,
	})
	require.True(t, ok)

	cmd, ok := domain.ParseCommand(msg)
	require.True(t, ok)

	return cmd
}

func TestGood_HandleCommand(t *testing.T) {
	tests := []struct {
		name    string
		sendErr error
	}{
		{name: "replies good"},
		{name: "send fails", sendErr: errors.New("fail")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := new(MockReplier)
			r.On("SendReply", mock.Anything, "#x", "42", "good").Return(tc.sendErr).Once()

			h := NewGood("test")
			assert.Equal(t, "test", h.GetCommand())

			err := h.HandleCommand(t.Context(), newCommand(t, r, "!test"))
			if tc.sendErr != nil {
				require.ErrorIs(t, err, domain.ErrSendFailure)
			} else {
				require.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}
