package generator

import (
	"context"
	"errors"
	"fmt"

	"chatbot/internal/core/domain"

	"github.com/revrost/go-openrouter"
)

type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		request openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouterGenerator struct {
	client       OpenRouterClient
	model        string
	systemPrompt string
}

func NewOpenRouterGenerator(apiKey, model, systemPrompt string) *OpenRouterGenerator {
	return &OpenRouterGenerator{
		model:        model,
		systemPrompt: systemPrompt,
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle("chatbot"),
		),
	}
}

var errNoChoices = errors.New("openrouter returned no choices")

func (c *OpenRouterGenerator) GenerateFromPrompt(
	ctx context.Context, prompts []domain.Prompt) (domain.ModelResponse, error) {
	messages := make([]openrouter.ChatCompletionMessage, 0, len(prompts)+1)

	if c.systemPrompt != "" {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role: openrouter.ChatMessageRoleSystem,
			Content: openrouter.Content{
				Text: c.systemPrompt,
			},
		})
	}

	for _, prompt := range prompts {
		role := openrouter.ChatMessageRoleUser
		if prompt.Author == domain.System {
			role = openrouter.ChatMessageRoleAssistant
		}

		messages = append(messages, openrouter.ChatCompletionMessage{
			Role: role,
			Content: openrouter.Content{
				Text: prompt.Prompt,
			},
		})
	}

	ccr := openrouter.ChatCompletionRequest{
		Messages: messages,
		Model:    c.model,
	}

	resp, err := c.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return domain.ModelResponse{}, errNoChoices
	}

	response := domain.ModelResponse{
		Response: resp.Choices[0].Message.Content.Text,
		Metadata: domain.ResponseMetadata{Model: resp.Model},
	}

	// usage is omitted by some providers
	if resp.Usage != nil {
		response.Metadata.CompletionTokens = resp.Usage.CompletionTokens
		response.Metadata.TotalTokens = resp.Usage.TotalTokens
	}

	return response, nil
}
