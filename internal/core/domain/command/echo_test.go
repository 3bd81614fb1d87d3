package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEcho_HandleCommand(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		sendErr error
	}{
		{
			name: "echoes args with single spaces",
			text: "!echo hello    world",
			want: "hello world",
		},
		{
			name: "asks for input without args",
			text: "!echo",
			want: "please input some text",
		},
		{
			name:    "send fails",
			text:    "!echo hi",
			want:    "hi",
			sendErr: errors.New("fail"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := new(MockReplier)
			r.On("SendReply", mock.Anything, "#x", "42", tc.want).Return(tc.sendErr).Once()

			err := NewEcho("echo").HandleCommand(t.Context(), newCommand(t, r, tc.text))
			if tc.sendErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}
