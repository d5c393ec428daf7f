// Package llm generates and rewrites outreach copy through a chat
// completion API.
package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/reachway/reachway/internal/config"
	"github.com/reachway/reachway/internal/providers/upstream"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultVariationCount is used when a variations request omits the count.
const DefaultVariationCount = 3

// Client wraps the chat completion API for message work.
type Client struct {
	api   *openai.Client
	model string
	log   *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.LLMConfig, log *zap.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
		log:   log.Named("llm"),
	}
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", &upstream.Error{Provider: "llm", Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", &upstream.Error{Provider: "llm", Message: "empty completion"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
