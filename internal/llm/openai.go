package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/JelteF/pg-human/internal/config"
	pgherrors "github.com/JelteF/pg-human/internal/errors"
)

// OpenAIClient is a Completer backed by an OpenAI-compatible chat-completions
// endpoint. With provider "openai" it talks to api.openai.com; with provider
// "custom" it talks to whatever base_url points at (OpenRouter, a local
// Ollama in OpenAI-compatibility mode, etc.) - the wire contract is the same.
type OpenAIClient struct {
	inner *openai.Client
	model string
}

var _ Completer = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from the resolved configuration and API key.
// The key must already be validated for presence; this constructor does not
// perform any network calls.
func NewOpenAIClient(cfg config.Config, apiKey string) *OpenAIClient {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.Provider == config.ProviderCustom {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		inner: openai.NewClientWithConfig(clientCfg),
		model: cfg.Model,
	}
}

// Complete sends one chat-completion request and returns the first choice's
// content. Network failures, auth failures and malformed responses all
// surface as a single completion_failed category.
func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := c.inner.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", pgherrors.Wrap(pgherrors.CompletionFailed, "completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", pgherrors.New(pgherrors.CompletionFailed, "completion service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
