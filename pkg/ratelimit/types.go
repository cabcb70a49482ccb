package ratelimit

import "time"

// Default limiter settings.
const (
	DefaultLimit         = 10
	DefaultWindow        = time.Minute
	DefaultSweepSchedule = "@every 1m"
)

// Config configures a FixedWindow limiter.
type Config struct {
	// Limit is the number of requests allowed per window.
	Limit int

	// Window is the window length.
	Window time.Duration
}

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Record is the per-client window state.
type Record struct {
	// ClientKey identifies the caller (usually an IP address).
	ClientKey string

	// Count is the number of requests admitted in the current window.
	Count int

	// WindowResetAt is when the current window ends.
	WindowResetAt time.Time
}

// Decision is the outcome of a rate limit check.
type Decision struct {
	// Allowed indicates if the request is permitted.
	Allowed bool

	// Limit is the configured limit value.
	Limit int

	// Remaining is how many requests remain in the window.
	Remaining int

	// ResetAt is when the window ends.
	ResetAt time.Time

	// RetryAfter suggests how long to wait before retrying (denials only).
	RetryAfter time.Duration
}
