package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"chatbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct {
	response string
	err      error
	prompts  []domain.Prompt
	deadline bool
	block    bool
}

func (m *MockTextGenerator) GenerateFromPrompt(ctx context.Context, prompts []domain.Prompt) (domain.ModelResponse, error) {
	m.prompts = prompts
	_, m.deadline = ctx.Deadline()
	if m.block {
		<-ctx.Done()
		return domain.ModelResponse{}, fmt.Errorf("openrouter API error: %w", ctx.Err())
	}
	return domain.ModelResponse{Response: m.response}, m.err
}

func TestAsk_HandleCommand(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		generator  *MockTextGenerator
		wantReply  string
		wantPrompt string
	}{
		{
			name:       "replies with generated answer",
			text:       "!ask what is   go?",
			generator:  &MockTextGenerator{response: "a language"},
			wantReply:  "a language",
			wantPrompt: "bob: what is go?",
		},
		{
			name:      "asks for a prompt without args",
			text:      "!ask",
			generator: &MockTextGenerator{},
			wantReply: "please input a prompt",
		},
		{
			name:       "reports generator failure",
			text:       "!ask hi",
			generator:  &MockTextGenerator{err: errors.New("rate limited")},
			wantReply:  "failed to generate reply: rate limited",
			wantPrompt: "bob: hi",
		},
		{
			name:       "truncates long answers",
			text:       "!ask hi",
			generator:  &MockTextGenerator{response: strings.Repeat("x", MessageLimit+10)},
			wantReply:  strings.Repeat("x", MessageLimit-1) + "…",
			wantPrompt: "bob: hi",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := new(MockReplier)
			r.On("SendReply", mock.Anything, "#x", "42", tc.wantReply).Return(nil).Once()

			h := NewAsk(tc.generator, time.Minute, "ask")
			err := h.HandleCommand(t.Context(), newCommand(t, r, tc.text))
			require.NoError(t, err)

			if tc.wantPrompt != "" {
				require.Len(t, tc.generator.prompts, 1)
				assert.Equal(t, tc.wantPrompt, tc.generator.prompts[0].Prompt)
				assert.Equal(t, domain.User, tc.generator.prompts[0].Author)
				assert.True(t, tc.generator.deadline)
			} else {
				assert.Empty(t, tc.generator.prompts)
			}
			r.AssertExpectations(t)
		})
	}
}

func TestAsk_GeneratorTimeout(t *testing.T) {
	r := new(MockReplier)
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	r.On("SendReply", live, "#x", "42", "no answer within 10ms, try again later").Return(nil).Once()

	gen := &MockTextGenerator{block: true}
	err := NewAsk(gen, 10*time.Millisecond, "ask").HandleCommand(t.Context(), newCommand(t, r, "!ask hi"))
	require.NoError(t, err)

	assert.True(t, gen.deadline)
	r.AssertExpectations(t)
}

func TestAsk_SendFails(t *testing.T) {
	r := new(MockReplier)
	r.On("SendReply", mock.Anything, "#x", "42", "answer").Return(errors.New("closed")).Once()

	err := NewAsk(&MockTextGenerator{response: "answer"}, time.Minute, "ask").
		HandleCommand(t.Context(), newCommand(t, r, "!ask hi"))
	require.ErrorIs(t, err, domain.ErrSendFailure)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "äö…", truncate("äöüß", 3))
}
