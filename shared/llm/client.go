package llm

import (
	"context"
	"fmt"

	"github.com/lsimons/blogbot/blog/domain"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Client is an implementation of domain.Completer backed by an
// OpenAI-compatible chat completion API.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a Completer against the given API endpoint. baseURL may
// point at any OpenAI-compatible server.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the messages as one chat completion request and returns
// the first choice's content. Errors propagate unchanged to the caller.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage, temperature float32) (string, error) {
	log.Debug().Int("messages", len(messages)).Str("model", c.model).Msg("Requesting completion")

	reqMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    reqMessages,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Debug().Int("length", len(content)).Msg("Received completion")
	return content, nil
}
