package config

import "time"

// Config is the root configuration structure for the distill service.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, body limits and CORS.
	Server ServerConfig `yaml:"server"`

	// Completion configures the chat completion client.
	Completion CompletionConfig `yaml:"completion"`

	// Limits configures per-client request throttling.
	Limits LimitsConfig `yaml:"limits"`

	// Distill configures input validation for the distill endpoint.
	Distill DistillConfig `yaml:"distill"`

	// Secrets configures where the completion credential is looked up.
	Secrets SecretsConfig `yaml:"secrets"`

	// RunningList configures persistence for the running action list.
	RunningList RunningListConfig `yaml:"runninglist"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout must exceed completion.timeout so a slow upstream still
	// produces a response.
	// Default: 60s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes caps the distill request body. Larger bodies are
	// rejected with 413. Must be at least 12*distill.max_text_length+64.
	// Default: 262144 (256KB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS configuration for the browser client.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins lists allowed origins. ["*"] allows any origin.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods lists allowed methods.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders lists allowed request headers.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders lists response headers readable by the client.
	// Default: ["X-Request-ID", "Retry-After", "X-RateLimit-Limit",
	// "X-RateLimit-Remaining", "X-RateLimit-Reset"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the preflight cache lifetime in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// CompletionConfig configures the chat completion client.
type CompletionConfig struct {
	// BaseURL overrides the API endpoint. Empty uses the public API.
	BaseURL string `yaml:"base_url"`

	// Model must be "gpt-4o-mini".
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// Temperature must be 0.6.
	// Default: 0.6
	Temperature float64 `yaml:"temperature"`

	// MaxTokens must be 700.
	// Default: 700
	MaxTokens int `yaml:"max_tokens"`

	// Timeout bounds one completion call.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// APIKeySecret names the secret holding the API key. With the env
	// provider and no prefix, "openai-api-key" reads OPENAI_API_KEY.
	// Default: "openai-api-key"
	APIKeySecret string `yaml:"api_key_secret"`
}

// LimitsConfig configures the fixed window rate limiter.
type LimitsConfig struct {
	// RequestsPerWindow is the per-client request allowance.
	// Default: 10
	RequestsPerWindow int `yaml:"requests_per_window"`

	// Window is the window length.
	// Default: 60s
	Window time.Duration `yaml:"window"`

	// SweepSchedule is the cron spec for evicting expired records.
	// Default: "@every 1m"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// DistillConfig configures the distill endpoint.
type DistillConfig struct {
	// MaxTextLength is the maximum input length in characters.
	// Default: 20000
	MaxTextLength int `yaml:"max_text_length"`
}

// SecretsConfig configures credential providers.
type SecretsConfig struct {
	// EnvPrefix is prepended to environment variable names.
	// Default: ""
	EnvPrefix string `yaml:"env_prefix"`

	// FileDir, when set, is checked before the environment.
	FileDir string `yaml:"file_dir"`

	// Watch reloads FileDir secrets on change.
	// Default: true
	Watch bool `yaml:"watch"`

	// CacheTTL caches resolved secrets. Zero disables caching so a removed
	// credential is noticed on the next request.
	// Default: 0
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// RunningListConfig configures the running list store.
type RunningListConfig struct {
	// Backend is "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file for the sqlite backend.
	// Default: "data/runninglist.db"
	SQLitePath string `yaml:"sqlite_path"`

	// StorageKey is the key the list is stored under.
	// Default: "brainstormer-running-list"
	StorageKey string `yaml:"storage_key"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is json or text.
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes source file and line in records.
	AddSource bool `yaml:"add_source"`

	// RedactSecrets masks API keys and bearer tokens in log attributes.
	// Default: true
	RedactSecrets bool `yaml:"redact_secrets"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "distill"
	Namespace string `yaml:"namespace"`
}
