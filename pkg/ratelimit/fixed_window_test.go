package ratelimit

import (
	"context"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestFixedWindow_EleventhRequestDenied(t *testing.T) {
	clock := newFakeClock()
	limiter := NewFixedWindow(Config{Limit: 10, Window: time.Minute}, WithClock(clock.Now))

	for i := 1; i <= 10; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d: expected allowed", i)
		}
	}

	d := limiter.Check("1.2.3.4")
	if d.Allowed {
		t.Fatal("11th request: expected denied")
	}
	if d.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", d.Remaining)
	}
	if d.RetryAfter != time.Minute {
		t.Errorf("expected retry after 1m, got %s", d.RetryAfter)
	}

	rec, ok := limiter.Lookup("1.2.3.4")
	if !ok {
		t.Fatal("expected record to exist")
	}
	if rec.Count != 10 {
		t.Errorf("denial must not change the record, count=%d", rec.Count)
	}
}

func TestFixedWindow_ResetAfterWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewFixedWindow(Config{Limit: 10, Window: time.Minute}, WithClock(clock.Now))

	for i := 0; i < 10; i++ {
		limiter.Allow("k")
	}
	if limiter.Allow("k") {
		t.Fatal("expected denial at limit")
	}

	// Exactly at the reset instant the window is still active.
	clock.Advance(time.Minute)
	if limiter.Allow("k") {
		t.Fatal("expected denial at the reset instant")
	}

	clock.Advance(time.Millisecond)
	d := limiter.Check("k")
	if !d.Allowed {
		t.Fatal("expected allowed after window elapsed")
	}
	if d.Remaining != 9 {
		t.Errorf("expected fresh window with 9 remaining, got %d", d.Remaining)
	}

	rec, _ := limiter.Lookup("k")
	if rec.Count != 1 {
		t.Errorf("expected count reset to 1, got %d", rec.Count)
	}
	if !rec.WindowResetAt.Equal(clock.Now().Add(time.Minute)) {
		t.Errorf("unexpected reset time %s", rec.WindowResetAt)
	}
}

func TestFixedWindow_KeysIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := NewFixedWindow(Config{Limit: 3, Window: time.Minute}, WithClock(clock.Now))

	for i := 0; i < 3; i++ {
		limiter.Allow("a")
	}
	if limiter.Allow("a") {
		t.Error("expected key a to be limited")
	}
	if !limiter.Allow("b") {
		t.Error("key b must not be affected by key a")
	}
	if limiter.Len() != 2 {
		t.Errorf("expected 2 tracked keys, got %d", limiter.Len())
	}
}

func TestFixedWindow_Concurrent(t *testing.T) {
	limiter := NewFixedWindow(Config{Limit: 10, Window: time.Minute})

	var allowed int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("same") {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	if allowed != 10 {
		t.Errorf("expected exactly 10 admitted, got %d", allowed)
	}
}

func TestFixedWindow_Defaults(t *testing.T) {
	limiter := NewFixedWindow(Config{})
	if limiter.Limit() != DefaultLimit {
		t.Errorf("expected limit %d, got %d", DefaultLimit, limiter.Limit())
	}
	if limiter.Window() != DefaultWindow {
		t.Errorf("expected window %s, got %s", DefaultWindow, limiter.Window())
	}
}

func TestFixedWindow_Sweep(t *testing.T) {
	clock := newFakeClock()
	limiter := NewFixedWindow(Config{Limit: 10, Window: time.Minute}, WithClock(clock.Now))

	limiter.Allow("old")
	clock.Advance(30 * time.Second)
	limiter.Allow("new")
	clock.Advance(31 * time.Second)

	if removed := limiter.Sweep(); removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, ok := limiter.Lookup("old"); ok {
		t.Error("expected expired record to be evicted")
	}
	if _, ok := limiter.Lookup("new"); !ok {
		t.Error("expected active record to survive")
	}
}

func TestSweeper_RunOnce(t *testing.T) {
	clock := newFakeClock()
	limiter := NewFixedWindow(Config{Limit: 10, Window: time.Minute}, WithClock(clock.Now))
	limiter.Allow("a")
	limiter.Allow("b")
	clock.Advance(2 * time.Minute)

	var gotRemoved, gotRemaining int
	sweeper := NewSweeper(limiter, "", func(removed, remaining int) {
		gotRemoved, gotRemaining = removed, remaining
	})
	sweeper.RunOnce()

	if gotRemoved != 2 || gotRemaining != 0 {
		t.Errorf("expected removed=2 remaining=0, got removed=%d remaining=%d", gotRemoved, gotRemaining)
	}
}

func TestSweeper_StartStop(t *testing.T) {
	limiter := NewFixedWindow(Config{})
	sweeper := NewSweeper(limiter, "@every 1h", nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := sweeper.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !sweeper.IsRunning() {
		t.Fatal("expected sweeper to be running")
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for sweeper.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sweeper.IsRunning() {
		t.Error("expected sweeper to stop after context cancellation")
	}
}

func TestSweeper_InvalidSchedule(t *testing.T) {
	sweeper := NewSweeper(NewFixedWindow(Config{}), "not a schedule", nil)
	if err := sweeper.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if sweeper.IsRunning() {
		t.Error("sweeper must not run with an invalid schedule")
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		want       string
	}{
		{"forwarded single", "203.0.113.7", "", "10.0.0.1:1234", "203.0.113.7"},
		{"forwarded chain", " 203.0.113.7 , 10.0.0.2", "198.51.100.1", "10.0.0.1:1234", "203.0.113.7"},
		{"real ip", "", "198.51.100.1", "10.0.0.1:1234", "198.51.100.1"},
		{"empty forwarded entry falls through", " , 10.0.0.2", "198.51.100.1", "", "198.51.100.1"},
		{"remote addr", "", "", "10.0.0.1:1234", "10.0.0.1"},
		{"remote addr ipv6", "", "", "[::1]:8080", "::1"},
		{"remote addr without port", "", "", "10.0.0.1", "10.0.0.1"},
		{"unknown", "", "", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/distill", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			if got := ClientKey(r); got != tt.want {
				t.Errorf("ClientKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
