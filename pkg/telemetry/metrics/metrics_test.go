package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brainstormer-hq/distill/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() config.MetricsConfig {
	return config.MetricsConfig{
		Enabled:   true,
		Path:      "/metrics",
		Namespace: "test",
	}
}

func TestCollector_RecordRequest(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordRequest(200, 150*time.Millisecond)
	collector.RecordRequest(200, 300*time.Millisecond)
	collector.RecordRequest(429, time.Millisecond)

	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("200")); got != 2 {
		t.Errorf("expected 2 requests with code 200, got %v", got)
	}
	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("429")); got != 1 {
		t.Errorf("expected 1 request with code 429, got %v", got)
	}
}

func TestCollector_RecordRejection(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordRejection("length")
	collector.RecordRejection("length")
	collector.RecordRejection("method")

	if got := testutil.ToFloat64(collector.requestMetrics.rejections.WithLabelValues("length")); got != 2 {
		t.Errorf("expected 2 length rejections, got %v", got)
	}
}

func TestCollector_RecordCompletion(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCompletion("gpt-4o-mini", time.Second, "")
	collector.RecordCompletion("gpt-4o-mini", 30*time.Second, "timeout")

	if got := testutil.ToFloat64(collector.completionMetrics.requests.WithLabelValues("gpt-4o-mini")); got != 2 {
		t.Errorf("expected 2 completion calls, got %v", got)
	}
	if got := testutil.ToFloat64(collector.completionMetrics.errors.WithLabelValues("gpt-4o-mini", "timeout")); got != 1 {
		t.Errorf("expected 1 timeout, got %v", got)
	}
}

func TestCollector_RateLimitAndSweep(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	for i := 0; i < 10; i++ {
		collector.RecordRateLimit(true)
	}
	collector.RecordRateLimit(false)
	collector.RecordSweep(4, 6)

	if got := testutil.ToFloat64(collector.limiterMetrics.decisions.WithLabelValues("allowed")); got != 10 {
		t.Errorf("expected 10 allowed, got %v", got)
	}
	if got := testutil.ToFloat64(collector.limiterMetrics.decisions.WithLabelValues("denied")); got != 1 {
		t.Errorf("expected 1 denied, got %v", got)
	}
	if got := testutil.ToFloat64(collector.limiterMetrics.clients); got != 6 {
		t.Errorf("expected 6 tracked clients, got %v", got)
	}
	if got := testutil.ToFloat64(collector.limiterMetrics.swept); got != 4 {
		t.Errorf("expected 4 swept records, got %v", got)
	}
}

func TestCollector_RecordPlan(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordPlan("ok", 3)
	collector.RecordPlan("malformed", 1)

	if got := testutil.ToFloat64(collector.planMetrics.outcomes.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 ok outcome, got %v", got)
	}
	if got := testutil.CollectAndCount(collector.planMetrics.sections); got != 1 {
		t.Errorf("expected one sections histogram, got %d", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordRequest(200, time.Second)
	collector.RecordRateLimit(true)

	if got := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("200")); got != 0 {
		t.Errorf("disabled collector must not record, got %v", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var collector *Collector

	collector.RecordRequest(200, time.Second)
	collector.RecordRejection("body")
	collector.RecordCompletion("gpt-4o-mini", time.Second, "")
	collector.RecordRateLimit(false)
	collector.RecordSweep(1, 1)
	collector.RecordPlan("ok", 2)
}

func TestCollector_DefaultNamespace(t *testing.T) {
	cfg := testConfig()
	cfg.Namespace = ""
	collector := NewCollector(cfg, prometheus.NewRegistry())
	collector.RecordRateLimit(true)

	expected := `
# HELP distill_ratelimit_decisions_total Rate limit decisions (allowed, denied)
# TYPE distill_ratelimit_decisions_total counter
distill_ratelimit_decisions_total{decision="allowed"} 1
`
	if err := testutil.CollectAndCompare(collector.limiterMetrics.decisions, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metric output: %v", err)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRequest(200, 100*time.Millisecond)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `test_http_requests_total{code="200"} 1`) {
		t.Errorf("expected request counter in exposition, got:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("expected runtime collector on default registry")
	}
}

func TestCollector_HandlerCountsScrapes(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	handler := collector.Handler()

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("scrape %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `promhttp_metric_handler_requests_total{code="200"} 2`) {
		t.Errorf("expected two counted scrapes, got:\n%s", rec.Body.String())
	}
}

func TestCollector_NilHandler(t *testing.T) {
	var collector *Collector

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 from nil collector, got %d", rec.Code)
	}
}
