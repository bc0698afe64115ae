// Package ai implements the completion client against Groq's
// OpenAI-compatible chat API.
package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ai-autopilot/gateway/internal/infrastructure/config"
)

// ErrEmptyCompletion is returned when the API answers with no choices.
var ErrEmptyCompletion = errors.New("completion returned no choices")

// GroqClient is a thin pass-through to the hosted model: one user message
// in, the first choice's content out.
type GroqClient struct {
	client *openai.Client
	model  string
}

func NewGroqClient(cfg config.GroqConfig) *GroqClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	return &GroqClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (g *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
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
