package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576   // 1MB
	DefaultMaxBodyBytes    = 256 << 10 // 256KB

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600

	// Completion defaults
	DefaultCompletionModel        = "gpt-4o-mini"
	DefaultCompletionTemperature  = 0.6
	DefaultCompletionMaxTokens    = 700
	DefaultCompletionTimeout      = 30 * time.Second
	DefaultCompletionAPIKeySecret = "openai-api-key"

	// Limits defaults
	DefaultRequestsPerWindow = 10
	DefaultWindow            = 60 * time.Second
	DefaultSweepSchedule     = "@every 1m"

	// Distill defaults
	DefaultMaxTextLength = 20000

	// Secrets defaults
	DefaultSecretsWatch = true

	// Running list defaults
	DefaultRunningListBackend    = "sqlite"
	DefaultRunningListSQLitePath = "data/runninglist.db"
	DefaultRunningListStorageKey = "brainstormer-running-list"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultRedactSecrets    = true
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "distill"
)

var (
	defaultCORSAllowedOrigins = []string{"*"}
	defaultCORSAllowedMethods = []string{"GET", "POST", "OPTIONS"}
	defaultCORSAllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	defaultCORSExposedHeaders = []string{
		"X-Request-ID",
		"Retry-After",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
	}
)

// Defaults returns a fully populated default configuration. YAML is decoded
// on top of it so boolean fields that default to true can be turned off.
func Defaults() *Config {
	cfg := &Config{}
	cfg.Server.CORS.Enabled = DefaultCORSEnabled
	cfg.Secrets.Watch = DefaultSecretsWatch
	cfg.Telemetry.Logging.RedactSecrets = DefaultRedactSecrets
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values.
// It is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// CORS defaults
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = append([]string(nil), defaultCORSAllowedOrigins...)
	}
	if len(cfg.Server.CORS.AllowedMethods) == 0 {
		cfg.Server.CORS.AllowedMethods = append([]string(nil), defaultCORSAllowedMethods...)
	}
	if len(cfg.Server.CORS.AllowedHeaders) == 0 {
		cfg.Server.CORS.AllowedHeaders = append([]string(nil), defaultCORSAllowedHeaders...)
	}
	if len(cfg.Server.CORS.ExposedHeaders) == 0 {
		cfg.Server.CORS.ExposedHeaders = append([]string(nil), defaultCORSExposedHeaders...)
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Completion defaults
	if cfg.Completion.Model == "" {
		cfg.Completion.Model = DefaultCompletionModel
	}
	if cfg.Completion.Temperature == 0 {
		cfg.Completion.Temperature = DefaultCompletionTemperature
	}
	if cfg.Completion.MaxTokens == 0 {
		cfg.Completion.MaxTokens = DefaultCompletionMaxTokens
	}
	if cfg.Completion.Timeout == 0 {
		cfg.Completion.Timeout = DefaultCompletionTimeout
	}
	if cfg.Completion.APIKeySecret == "" {
		cfg.Completion.APIKeySecret = DefaultCompletionAPIKeySecret
	}

	// Limits defaults
	if cfg.Limits.RequestsPerWindow == 0 {
		cfg.Limits.RequestsPerWindow = DefaultRequestsPerWindow
	}
	if cfg.Limits.Window == 0 {
		cfg.Limits.Window = DefaultWindow
	}
	if cfg.Limits.SweepSchedule == "" {
		cfg.Limits.SweepSchedule = DefaultSweepSchedule
	}

	// Distill defaults
	if cfg.Distill.MaxTextLength == 0 {
		cfg.Distill.MaxTextLength = DefaultMaxTextLength
	}

	// Running list defaults
	if cfg.RunningList.Backend == "" {
		cfg.RunningList.Backend = DefaultRunningListBackend
	}
	if cfg.RunningList.SQLitePath == "" {
		cfg.RunningList.SQLitePath = DefaultRunningListSQLitePath
	}
	if cfg.RunningList.StorageKey == "" {
		cfg.RunningList.StorageKey = DefaultRunningListStorageKey
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}
