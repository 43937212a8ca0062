package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultAnthropicURL = "https://api.anthropic.com/v1"
	anthropicVersion    = "2023-06-01"
)

// AnthropicClient implementa Client sobre la Messages API.
type AnthropicClient struct {
	http      *resty.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

func NewAnthropicClient(opts Options, logger *zap.Logger) *AnthropicClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicURL
	}
	httpClient := newRestyClient(baseURL, opts.Timeout).
		SetHeader("x-api-key", opts.APIKey).
		SetHeader("anthropic-version", anthropicVersion)
	return &AnthropicClient{
		http:      httpClient,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		logger:    logger,
	}
}

func (c *AnthropicClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    prompt.System,
		Messages: []chatMessage{
			{Role: "user", Content: prompt.User},
		},
	}

	var (
		out    messagesResponse
		apiErr messagesError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&out).
		SetError(&apiErr).
		Post("/messages")
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("llm error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("type", apiErr.Error.Type),
			zap.String("message", apiErr.Error.Message),
		)
		return "", fmt.Errorf("llm http error: status=%d", resp.StatusCode())
	}

	// Solo se toma el primer bloque de texto.
	for _, block := range out.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type messagesError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
