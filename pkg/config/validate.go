package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. All field errors are
// collected and returned together as a ValidationError.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateCompletion(&cfg.Completion)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)
	errs = append(errs, validateDistill(&cfg.Distill)...)
	errs = append(errs, validateRunningList(&cfg.RunningList)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateBodyCap(cfg)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// Worst-case JSON size of one input character (an escaped surrogate pair)
// and room for the request envelope around the text field.
const (
	maxEscapedCharBytes  = 12
	requestEnvelopeBytes = 64
)

// MinBodyBytes returns the smallest body cap that fits maxTextLength
// characters.
func MinBodyBytes(maxTextLength int) int64 {
	return int64(maxTextLength)*maxEscapedCharBytes + requestEnvelopeBytes
}

// validateBodyCap requires the body cap to admit any text the length limit
// allows, so an over-long text is always reported by the length check.
func validateBodyCap(cfg *Config) []FieldError {
	if cfg.Server.MaxBodyBytes <= 0 || cfg.Distill.MaxTextLength <= 0 {
		return nil
	}

	need := MinBodyBytes(cfg.Distill.MaxTextLength)
	if cfg.Server.MaxBodyBytes < need {
		return []FieldError{{
			Field:   "server.max_body_bytes",
			Message: fmt.Sprintf("must be at least %d to fit distill.max_text_length %d, got %d",
				need, cfg.Distill.MaxTextLength, cfg.Server.MaxBodyBytes),
		}}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "listen address is required"})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "read timeout must be positive"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "write timeout must be positive"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.idle_timeout", Message: "idle timeout must be positive"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "max header bytes must be non-negative"})
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, FieldError{Field: "server.max_body_bytes", Message: "max body bytes must be positive"})
	}
	if cfg.CORS.MaxAge < 0 {
		errs = append(errs, FieldError{Field: "server.cors.max_age", Message: "max age must be non-negative"})
	}

	return errs
}

func validateCompletion(cfg *CompletionConfig) []FieldError {
	var errs []FieldError

	if cfg.Model != DefaultCompletionModel {
		errs = append(errs, FieldError{
			Field:   "completion.model",
			Message: fmt.Sprintf("only %q is allowed, got %q", DefaultCompletionModel, cfg.Model),
		})
	}
	if cfg.Temperature != DefaultCompletionTemperature {
		errs = append(errs, FieldError{
			Field:   "completion.temperature",
			Message: fmt.Sprintf("only %v is allowed, got %v", DefaultCompletionTemperature, cfg.Temperature),
		})
	}
	if cfg.MaxTokens != DefaultCompletionMaxTokens {
		errs = append(errs, FieldError{
			Field:   "completion.max_tokens",
			Message: fmt.Sprintf("only %d is allowed, got %d", DefaultCompletionMaxTokens, cfg.MaxTokens),
		})
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{Field: "completion.timeout", Message: "timeout must be positive"})
	}
	if cfg.APIKeySecret == "" {
		errs = append(errs, FieldError{Field: "completion.api_key_secret", Message: "secret name is required"})
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{Field: "completion.base_url", Message: "base URL must be an absolute URL"})
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, FieldError{Field: "completion.base_url", Message: "base URL scheme must be http or https"})
		}
	}

	return errs
}

func validateLimits(cfg *LimitsConfig) []FieldError {
	var errs []FieldError

	if cfg.RequestsPerWindow <= 0 {
		errs = append(errs, FieldError{Field: "limits.requests_per_window", Message: "requests per window must be positive"})
	}
	if cfg.Window <= 0 {
		errs = append(errs, FieldError{Field: "limits.window", Message: "window must be positive"})
	}
	if _, err := cron.ParseStandard(cfg.SweepSchedule); err != nil {
		errs = append(errs, FieldError{Field: "limits.sweep_schedule", Message: fmt.Sprintf("invalid cron schedule: %v", err)})
	}

	return errs
}

func validateDistill(cfg *DistillConfig) []FieldError {
	if cfg.MaxTextLength <= 0 {
		return []FieldError{{Field: "distill.max_text_length", Message: "max text length must be positive"}}
	}
	return nil
}

func validateRunningList(cfg *RunningListConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory":
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, FieldError{Field: "runninglist.sqlite_path", Message: "sqlite path is required for sqlite backend"})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "runninglist.backend",
			Message: fmt.Sprintf("unknown backend %q (expected memory or sqlite)", cfg.Backend),
		})
	}
	if cfg.StorageKey == "" {
		errs = append(errs, FieldError{Field: "runninglist.storage_key", Message: "storage key is required"})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid log level %q (expected debug, info, warn or error)", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid log format %q (expected json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "metrics path must start with /"})
	}

	return errs
}
