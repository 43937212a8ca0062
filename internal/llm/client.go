package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client define la interfaz para generar texto con un LLM.
type Client interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt separa instrucciones de sistema y mensaje de usuario.
type Prompt struct {
	System string
	User   string
}

var (
	ErrDisabled      = errors.New("llm client disabled")
	ErrEmptyResponse = errors.New("llm empty response")
)

type Options struct {
	Provider  string
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewClient elige la implementacion segun el proveedor. Sin API key devuelve
// un cliente deshabilitado en lugar de fallar al arrancar.
func NewClient(opts Options, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return NewDisabledClient("llm api key not configured")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "openai":
		return NewOpenAIClient(opts, logger)
	default:
		return NewAnthropicClient(opts, logger)
	}
}

func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
}

type disabledClient struct {
	reason string
}

func NewDisabledClient(reason string) Client {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Generate(_ context.Context, _ Prompt) (string, error) {
	if c.reason == "" {
		return "", ErrDisabled
	}
	return "", errors.Join(ErrDisabled, errors.New(c.reason))
}
