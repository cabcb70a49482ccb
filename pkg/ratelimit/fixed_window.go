package ratelimit

import (
	"sync"
	"time"
)

// FixedWindow is a per-key fixed window counter.
type FixedWindow struct {
	limit   int
	window  time.Duration
	now     Clock
	records map[string]*Record
	mu      sync.Mutex
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithClock overrides the time source.
func WithClock(clock Clock) Option {
	return func(fw *FixedWindow) {
		if clock != nil {
			fw.now = clock
		}
	}
}

// NewFixedWindow creates a limiter. Zero config values fall back to the
// defaults (10 requests per minute).
func NewFixedWindow(config Config, opts ...Option) *FixedWindow {
	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	if config.Window <= 0 {
		config.Window = DefaultWindow
	}

	fw := &FixedWindow{
		limit:   config.Limit,
		window:  config.Window,
		now:     time.Now,
		records: make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw
}

// Allow reports whether a request from key is admitted, counting it if so.
func (fw *FixedWindow) Allow(key string) bool {
	return fw.Check(key).Allowed
}

// Check admits or denies a request from key and returns the window state.
func (fw *FixedWindow) Check(key string) Decision {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()

	rec, ok := fw.records[key]
	if !ok || now.After(rec.WindowResetAt) {
		rec = &Record{ClientKey: key, Count: 1, WindowResetAt: now.Add(fw.window)}
		fw.records[key] = rec
		return fw.decision(rec, true, now)
	}

	if rec.Count >= fw.limit {
		return fw.decision(rec, false, now)
	}

	rec.Count++
	return fw.decision(rec, true, now)
}

// decision builds a Decision from rec. Caller must hold the lock.
func (fw *FixedWindow) decision(rec *Record, allowed bool, now time.Time) Decision {
	d := Decision{
		Allowed:   allowed,
		Limit:     fw.limit,
		Remaining: fw.limit - rec.Count,
		ResetAt:   rec.WindowResetAt,
	}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !allowed {
		d.RetryAfter = rec.WindowResetAt.Sub(now)
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d
}

// Sweep removes records whose window has ended and returns how many were
// removed.
func (fw *FixedWindow) Sweep() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	removed := 0
	for key, rec := range fw.records {
		if now.After(rec.WindowResetAt) {
			delete(fw.records, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked client keys.
func (fw *FixedWindow) Len() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	return len(fw.records)
}

// Lookup returns a copy of the record for key.
func (fw *FixedWindow) Lookup(key string) (Record, bool) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	rec, ok := fw.records[key]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Limit returns the configured per-window limit.
func (fw *FixedWindow) Limit() int {
	return fw.limit
}

// Window returns the configured window length.
func (fw *FixedWindow) Window() time.Duration {
	return fw.window
}
