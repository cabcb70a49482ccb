package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brainstormer-hq/distill/pkg/distill"

	"github.com/tidwall/gjson"
)

const (
	// DistillPath is appended to the base URL.
	DistillPath = "/api/distill"

	// DefaultTimeout bounds one distill call. It exceeds the server's
	// completion timeout so server-side failures arrive as responses.
	DefaultTimeout = 45 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Config configures a Client.
type Config struct {
	// BaseURL is the distill server, e.g. "http://127.0.0.1:8080".
	BaseURL string

	// Timeout bounds one request. Ignored when HTTPClient is set.
	// Default: 45s
	Timeout time.Duration

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client
}

// Client calls a distill server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("base URL must start with http:// or https://: %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     slog.Default().With("component", "client"),
	}, nil
}

// Distill sends text to the server and returns the plan.
func (c *Client) Distill(ctx context.Context, text string) (distill.Plan, error) {
	body, err := json.Marshal(distill.Request{Text: text})
	if err != nil {
		return distill.Plan{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+DistillPath, bytes.NewReader(body))
	if err != nil {
		return distill.Plan{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending distill request", "url", req.URL.String(), "text_length", len(text))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return distill.Plan{}, fmt.Errorf("distill request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return distill.Plan{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return distill.Plan{}, statusError(resp, respBody)
	}

	if !gjson.GetBytes(respBody, "sections").IsArray() {
		return distill.Plan{}, ErrInvalidServerResponse
	}

	var plan distill.Plan
	if err := json.Unmarshal(respBody, &plan); err != nil {
		return distill.Plan{}, fmt.Errorf("%w: %v", ErrInvalidServerResponse, err)
	}

	return plan, nil
}

// Generate asks the server for a plan and falls back to MockPlan on any
// failure. offline reports whether the fallback was used.
func (c *Client) Generate(ctx context.Context, text string) (plan distill.Plan, offline bool) {
	plan, err := c.Distill(ctx, text)
	if err != nil {
		c.logger.Info("using offline plan generator", "reason", err.Error())
		return MockPlan(text), true
	}
	return plan, false
}

func statusError(resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusRequestEntityTooLarge:
		return ErrTextTooLong
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: retryAfter(resp.Header.Get("Retry-After"))}
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    gjson.GetBytes(body, "error").String(),
		Fallback:   gjson.GetBytes(body, "fallback.sections").IsArray(),
	}
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
