package client

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTextTooLong is returned when the server rejects the input with 413.
	ErrTextTooLong = errors.New("Input text is too long")

	// ErrRateLimited is returned when the server answers 429.
	ErrRateLimited = errors.New("Rate limit exceeded. Please try again later.")

	// ErrMethodNotAllowed is returned when the server answers 405.
	ErrMethodNotAllowed = errors.New("Method not allowed")

	// ErrInvalidServerResponse is returned when a 200 response has no
	// sections array.
	ErrInvalidServerResponse = errors.New("Invalid response format from server")
)

// APIError is any other non-2xx response from the distill endpoint.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the server's "error" field, when present.
	Message string

	// Fallback is true when the server attached a fallback plan.
	Fallback bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// RateLimitError carries the server's Retry-After hint. It matches
// ErrRateLimited with errors.Is.
type RateLimitError struct {
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", ErrRateLimited.Error(), e.RetryAfter)
	}
	return ErrRateLimited.Error()
}

// Unwrap returns ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
