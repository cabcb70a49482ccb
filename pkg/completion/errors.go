package completion

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResponse is returned when the service answers successfully but
// without any message content.
var ErrEmptyResponse = errors.New("completion returned no content")

// UpstreamError represents a failure reported by, or while talking to, the
// completion service. The message is for logs only and must never be
// forwarded to clients.
type UpstreamError struct {
	// StatusCode is the HTTP status code (0 for transport failures)
	StatusCode int

	// Message is the error message from the service
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("completion upstream error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("completion upstream error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents a call that exceeded the configured deadline.
type TimeoutError struct {
	// Timeout is the configured timeout duration
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion request timeout after %s", e.Timeout)
}

// ConfigError represents an invalid client configuration, either at
// construction or when a request is made without a credential.
type ConfigError struct {
	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("completion configuration error for field %q: %s", e.Field, e.Message)
}
