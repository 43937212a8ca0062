package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultOpenAIURL = "https://api.openai.com/v1"

// OpenAIClient implementa Client usando la API de OpenAI-compatible.
type OpenAIClient struct {
	http      *resty.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewOpenAIClient construye un cliente apuntando a la API de chat completions.
func NewOpenAIClient(opts Options, logger *zap.Logger) *OpenAIClient {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAIClient{
		http:      newRestyClient(baseURL, opts.Timeout).SetAuthToken(opts.APIKey),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		logger:    logger,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if prompt.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: prompt.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt.User})

	var cr chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: c.model, MaxTokens: c.maxTokens, Messages: messages}).
		SetResult(&cr).
		SetError(&cr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.IsError() {
		msg := ""
		if cr.Error != nil {
			msg = cr.Error.Message
		}
		c.logger.Warn("llm error status", zap.Int("status", resp.StatusCode()), zap.String("message", msg))
		return "", fmt.Errorf("llm http error: status=%d", resp.StatusCode())
	}

	if cr.Error != nil {
		return "", fmt.Errorf("llm api error: %s", cr.Error.Message)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return cr.Choices[0].Message.Content, nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
