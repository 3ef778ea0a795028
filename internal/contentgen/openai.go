package contentgen

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
)

// OpenAIProvider generates text through an OpenAI-compatible chat
// completion endpoint.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIProvider creates a provider from configuration. A custom
// BaseURL points the client at any OpenAI-compatible endpoint.
func NewOpenAIProvider(cfg config.ContentConfig) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
}

// Generate runs one chat completion and returns its text.
func (p *OpenAIProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Provider = (*OpenAIProvider)(nil)
