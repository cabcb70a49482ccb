package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/telemetry/logging"

	"github.com/tidwall/gjson"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates request ID when not provided", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		got := w.Header().Get(RequestIDHeader)
		if len(got) != 36 {
			t.Errorf("expected a UUID, got %q", got)
		}
		if seen != got {
			t.Errorf("context ID %q differs from header %q", seen, got)
		}
	})

	t.Run("uses provided request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "client-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Header().Get(RequestIDHeader) != "client-123" {
			t.Errorf("expected client ID to be reused, got %q", w.Header().Get(RequestIDHeader))
		}
	})

	t.Run("replaces unsafe request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "bad id\twith spaces")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got == "bad id\twith spaces" || got == "" {
			t.Errorf("expected generated ID, got %q", got)
		}
	})

	t.Run("unique IDs", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
		handler.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))
		if w1.Header().Get(RequestIDHeader) == w2.Header().Get(RequestIDHeader) {
			t.Error("expected different IDs")
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		wrapped := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("secret internal state")
		}))

		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/distill", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
		if got := gjson.Get(w.Body.String(), "error").String(); got != "Internal server error" {
			t.Errorf("unexpected body %q", w.Body.String())
		}
		if strings.Contains(w.Body.String(), "secret") {
			t.Error("panic value must not reach the client")
		}
	})

	t.Run("keeps status already sent", func(t *testing.T) {
		wrapped := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			panic("late failure")
		}))

		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/distill", nil))

		if w.Code != http.StatusAccepted {
			t.Errorf("expected original status 202, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("expected no error body after headers, got %q", w.Body.String())
		}
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		RecoveryMiddleware(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusOK || w.Body.String() != "OK" {
			t.Errorf("unexpected response %d %q", w.Code, w.Body.String())
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}), RequestIDMiddleware, LoggingMiddleware)

	req := httptest.NewRequest(http.MethodPost, "/api/distill", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var completed string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if gjson.Get(line, "msg").String() == "request completed" {
			completed = line
		}
	}
	if completed == "" {
		t.Fatalf("no access log record in %s", buf.String())
	}

	checks := map[string]string{
		"level":      "WARN",
		"status":     "429",
		"path":       "/api/distill",
		"client":     "203.0.113.7",
		"request_id": "req-7",
	}
	for field, want := range checks {
		if got := gjson.Get(completed, field).String(); got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
}

func TestCORSMiddleware(t *testing.T) {
	cfg := config.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         600,
	}

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		CORSMiddleware(cfg)(okHandler()).ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
			t.Errorf("expected origin echoed, got %q", w.Header().Get("Access-Control-Allow-Origin"))
		}
		if w.Header().Get("Access-Control-Expose-Headers") != "Retry-After" {
			t.Errorf("expected exposed headers, got %q", w.Header().Get("Access-Control-Expose-Headers"))
		}
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		CORSMiddleware(cfg)(okHandler()).ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("disallowed origin must not be granted")
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/distill", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		CORSMiddleware(cfg)(okHandler()).ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Methods") != "POST, OPTIONS" {
			t.Errorf("unexpected methods %q", w.Header().Get("Access-Control-Allow-Methods"))
		}
		if w.Header().Get("Access-Control-Max-Age") != "600" {
			t.Errorf("unexpected max age %q", w.Header().Get("Access-Control-Max-Age"))
		}
	})

	t.Run("wildcard", func(t *testing.T) {
		wild := cfg
		wild.AllowedOrigins = []string{"*"}
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Origin", "https://any.example.com")
		w := httptest.NewRecorder()
		CORSMiddleware(wild)(okHandler()).ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("expected *, got %q", w.Header().Get("Access-Control-Allow-Origin"))
		}
	})

	t.Run("disabled", func(t *testing.T) {
		off := cfg
		off.Enabled = false
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		CORSMiddleware(off)(okHandler()).ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("disabled CORS must pass through untouched")
		}
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(okHandler(), mark("a"), mark("b"), mark("c")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "a,b,c" {
		t.Errorf("expected a,b,c, got %v", order)
	}
}
