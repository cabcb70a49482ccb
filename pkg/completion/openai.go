package completion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Request parameters the service is allowed to send. They cap cost per
// call and are never taken from a request.
const (
	LockedModel       = "gpt-4o-mini"
	LockedTemperature = 0.6
	LockedMaxTokens   = 700
)

// DefaultTimeout is applied by NewOpenAIClient when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Completer sends one system+user exchange and returns the raw reply text.
type Completer interface {
	Complete(ctx context.Context, apiKey, system, user string) (string, error)
}

// Config holds the completion client settings.
type Config struct {
	// BaseURL overrides the API endpoint (empty uses the public API)
	BaseURL string

	// Model must be empty or equal to LockedModel
	Model string

	// Temperature must be zero or equal to LockedTemperature
	Temperature float64

	// MaxTokens must be zero or equal to LockedMaxTokens
	MaxTokens int

	// Timeout bounds a single call, including reading the response
	Timeout time.Duration

	// HTTPClient is optional; tests inject one bound to a fake server
	HTTPClient *http.Client
}

// OpenAIClient calls the chat completions API through openai-go.
// It never retries; each Complete makes exactly one outbound call.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
}

// NewOpenAIClient validates cfg and builds a client. Zero values take the
// locked parameters; any other model, temperature or token cap is rejected
// so misconfiguration fails at startup.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.Model == "" {
		cfg.Model = LockedModel
	}
	if cfg.Model != LockedModel {
		return nil, &ConfigError{Field: "model", Message: "only " + LockedModel + " is supported, got " + cfg.Model}
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = LockedTemperature
	}
	if cfg.Temperature != LockedTemperature {
		return nil, &ConfigError{Field: "temperature", Message: fmt.Sprintf("only %v is supported, got %v", LockedTemperature, cfg.Temperature)}
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = LockedMaxTokens
	}
	if cfg.MaxTokens != LockedMaxTokens {
		return nil, &ConfigError{Field: "max_tokens", Message: fmt.Sprintf("only %d is supported, got %d", LockedMaxTokens, cfg.MaxTokens)}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < 0 {
		return nil, &ConfigError{Field: "timeout", Message: "must be positive"}
	}

	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}, nil
}

// Model returns the model this client calls.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends the prompt pair and returns the first choice's content.
//
// Errors are one of *ConfigError (no credential), *TimeoutError,
// *UpstreamError, or ErrEmptyResponse.
func (c *OpenAIClient) Complete(ctx context.Context, apiKey, system, user string) (string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return "", &ConfigError{Field: "api_key", Message: "credential is not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	}, option.WithAPIKey(apiKey))
	if err != nil {
		return "", c.classify(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

// classify maps SDK and transport errors onto the package error types.
func (c *OpenAIClient) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: c.timeout}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return &UpstreamError{StatusCode: apiErr.StatusCode, Message: msg, Cause: err}
	}

	return &UpstreamError{Message: err.Error(), Cause: err}
}
