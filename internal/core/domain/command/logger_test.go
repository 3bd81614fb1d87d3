package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogMessage(t *testing.T) {
	replier := new(MockReplier)
	cmd := newCommand(t, replier, "!test hello")

	assert.NoError(t, LogMessage(context.Background(), cmd.Message()))
	replier.AssertNotCalled(t, "SendReply")
}
