package service

import (
	"context"
	"errors"
	"testing"

	"chatbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClientRun(t *testing.T) {
	transport := &MockTransport{events: []domain.Event{
		privmsg("1", "hello"),
		privmsg("2", "!test"),
	}}
	transport.On("Connect", mock.Anything).Return(nil).Once()
	transport.On("Close").Return(nil).Once()
	transport.On("SendReply", mock.Anything, "#x", "2", "good").Return(nil).Once()

	client := NewClient(transport)

	var seen []string
	client.OnMessageFunc(func(_ context.Context, m domain.Message) error {
		seen = append(seen, m.String())
		return nil
	})
	client.OnCommandFunc("test", func(ctx context.Context, c domain.Command) error {
		return c.Reply(ctx, "good")
	})

	err := client.Run(t.Context())
	require.ErrorIs(t, err, domain.ErrStreamEnded)

	assert.Equal(t, []string{"[#x] bob: hello"}, seen)
	assert.Equal(t, []string{"test"}, client.Commands())
	assert.True(t, client.Registry().HasCommand("test"))
	transport.AssertExpectations(t)
}

func TestClientRunConnectFails(t *testing.T) {
	transport := &MockTransport{}
	transport.On("Connect", mock.Anything).Return(errors.New("login authentication failed")).Once()
	transport.On("Close").Return(nil).Once()

	err := NewClient(transport).Run(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect transport")
	transport.AssertExpectations(t)
}

func TestClientRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	transport := &MockTransport{err: context.Canceled}
	transport.On("Connect", mock.Anything).Return(nil).Once()
	transport.On("Close").Return(nil).Once()

	require.NoError(t, NewClient(transport).Run(ctx))
	transport.AssertExpectations(t)
}

func TestClientSend(t *testing.T) {
	transport := &MockTransport{}
	transport.On("Send", mock.Anything, "#x", "hi").Return(nil).Once()
	transport.On("Send", mock.Anything, "#x", "fail").Return(domain.ErrNotConnected).Once()

	client := NewClient(transport)

	require.NoError(t, client.Send(t.Context(), "#x", "hi"))

	err := client.Send(t.Context(), "#x", "fail")
	require.ErrorIs(t, err, domain.ErrSendFailure)
	require.ErrorIs(t, err, domain.ErrNotConnected)
	transport.AssertExpectations(t)
}
