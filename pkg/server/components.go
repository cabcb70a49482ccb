package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"brainstormer-hq/distill/pkg/completion"
	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/ratelimit"
	"brainstormer-hq/distill/pkg/security/secrets"
	"brainstormer-hq/distill/pkg/telemetry/health"
	"brainstormer-hq/distill/pkg/telemetry/metrics"
)

// Components are the long-lived collaborators of the distill server.
type Components struct {
	Secrets    *secrets.Manager
	Credential *secrets.Credential
	Completer  completion.Completer
	Limiter    *ratelimit.FixedWindow
	Sweeper    *ratelimit.Sweeper
	Metrics    *metrics.Collector
	Health     *health.Checker

	closers []func() error
}

// ComponentOption adjusts components before they are assembled.
type ComponentOption func(*componentOptions)

type componentOptions struct {
	httpClient *http.Client
	clock      ratelimit.Clock
}

// WithHTTPClient sets the HTTP client used for completion calls.
func WithHTTPClient(client *http.Client) ComponentOption {
	return func(o *componentOptions) { o.httpClient = client }
}

// WithClock sets the rate limiter clock.
func WithClock(clock ratelimit.Clock) ComponentOption {
	return func(o *componentOptions) { o.clock = clock }
}

// BuildComponents assembles the service from configuration. A missing API
// key is not an error here; it surfaces per request as 503 and on /ready.
func BuildComponents(cfg *config.Config, opts ...ComponentOption) (*Components, error) {
	var o componentOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := &Components{}

	providers := make([]secrets.SecretProvider, 0, 2)
	if cfg.Secrets.FileDir != "" {
		fp, err := secrets.NewFileProvider(cfg.Secrets.FileDir, cfg.Secrets.Watch)
		if err != nil {
			return nil, fmt.Errorf("failed to create file secret provider: %w", err)
		}
		providers = append(providers, fp)
		c.closers = append(c.closers, fp.Close)
	}
	providers = append(providers, secrets.NewEnvProvider(cfg.Secrets.EnvPrefix))

	c.Secrets = secrets.NewManager(providers, secrets.CacheConfig{TTL: cfg.Secrets.CacheTTL})
	c.Credential = c.Secrets.Credential(cfg.Completion.APIKeySecret)

	client, err := completion.NewOpenAIClient(completion.Config{
		BaseURL:     cfg.Completion.BaseURL,
		Model:       cfg.Completion.Model,
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Timeout:     cfg.Completion.Timeout,
		HTTPClient:  o.httpClient,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	c.Completer = client

	var limiterOpts []ratelimit.Option
	if o.clock != nil {
		limiterOpts = append(limiterOpts, ratelimit.WithClock(o.clock))
	}
	c.Limiter = ratelimit.NewFixedWindow(ratelimit.Config{
		Limit:  cfg.Limits.RequestsPerWindow,
		Window: cfg.Limits.Window,
	}, limiterOpts...)

	if cfg.Telemetry.Metrics.Enabled {
		c.Metrics = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	}

	c.Sweeper = ratelimit.NewSweeper(c.Limiter, cfg.Limits.SweepSchedule, c.Metrics.RecordSweep)

	c.Health = health.New(0)
	c.Health.RegisterCheck("credential", health.CredentialCheck(c.Credential))

	slog.Info("components initialized",
		"model", client.Model(),
		"rate_limit", cfg.Limits.RequestsPerWindow,
		"window", cfg.Limits.Window.String(),
		"secret_file_dir", cfg.Secrets.FileDir != "",
		"metrics_enabled", c.Metrics != nil,
	)

	return c, nil
}

// Close releases watchers and other resources.
func (c *Components) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
