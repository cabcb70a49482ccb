package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"brainstormer-hq/distill/pkg/completion"
	"brainstormer-hq/distill/pkg/distill"
	"brainstormer-hq/distill/pkg/proxy"
	"brainstormer-hq/distill/pkg/proxy/types"
	"brainstormer-hq/distill/pkg/ratelimit"
	"brainstormer-hq/distill/pkg/telemetry/logging"
	"brainstormer-hq/distill/pkg/telemetry/metrics"
)

// Rate limit response headers.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// CredentialSource resolves the completion API key for one request.
type CredentialSource interface {
	Resolve(ctx context.Context) (string, error)
}

// RateLimiter decides whether a client may make another request.
type RateLimiter interface {
	Check(clientKey string) ratelimit.Decision
}

// DistillConfig holds the collaborators of a DistillHandler.
type DistillConfig struct {
	Credential CredentialSource
	Limiter    RateLimiter
	Completer  completion.Completer
	Normalizer *distill.Normalizer

	// Metrics may be nil.
	Metrics *metrics.Collector

	// Model labels completion metrics.
	Model string

	MaxBodyBytes  int64
	MaxTextLength int
}

// DistillHandler serves POST /api/distill.
//
// Every request passes the same stages in order and stops at the first
// failure: method, credential, body, length, rate limit, completion,
// normalization. Nothing is retried.
type DistillHandler struct {
	credential    CredentialSource
	limiter       RateLimiter
	completer     completion.Completer
	normalizer    *distill.Normalizer
	metrics       *metrics.Collector
	model         string
	maxBodyBytes  int64
	maxTextLength int
	logger        *slog.Logger
}

// NewDistillHandler creates a distill handler.
func NewDistillHandler(cfg DistillConfig) *DistillHandler {
	if cfg.Normalizer == nil {
		cfg.Normalizer = distill.NewNormalizer()
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = distill.MaxTextLength
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 256 * 1024
	}
	if cfg.Model == "" {
		cfg.Model = completion.LockedModel
	}

	return &DistillHandler{
		credential:    cfg.Credential,
		limiter:       cfg.Limiter,
		completer:     cfg.Completer,
		normalizer:    cfg.Normalizer,
		metrics:       cfg.Metrics,
		model:         cfg.Model,
		maxBodyBytes:  cfg.MaxBodyBytes,
		maxTextLength: cfg.MaxTextLength,
		logger:        slog.Default().With("component", "proxy.distill"),
	}
}

// ServeHTTP implements http.Handler.
func (h *DistillHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.serve(w, r)
	h.metrics.RecordRequest(status, time.Since(start))
}

func (h *DistillHandler) serve(w http.ResponseWriter, r *http.Request) int {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.metrics.RecordRejection("method")
		return h.writeError(w, http.StatusMethodNotAllowed, types.NewErrorResponse(types.MsgMethodNotAllowed))
	}

	apiKey, err := h.credential.Resolve(ctx)
	if err != nil || apiKey == "" {
		h.logger.ErrorContext(ctx, "completion credential unavailable")
		h.metrics.RecordRejection("credential")
		return h.writeError(w, http.StatusServiceUnavailable, types.NewErrorResponse(types.MsgServiceUnavailable))
	}

	req, err := proxy.ParseDistillRequest(r, h.maxBodyBytes, h.maxTextLength)
	if err != nil {
		var reqErr *proxy.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusRequestEntityTooLarge {
			h.metrics.RecordRejection("length")
		} else {
			h.metrics.RecordRejection("body")
		}
		h.logger.WarnContext(ctx, "rejected distill request", "error", err)
		return h.fail(w, err)
	}

	clientKey := ratelimit.ClientKey(r)
	ctx = logging.WithClient(ctx, clientKey)

	decision := h.limiter.Check(clientKey)
	setRateLimitHeaders(w, decision)
	h.metrics.RecordRateLimit(decision.Allowed)
	if !decision.Allowed {
		w.Header().Set(HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
		h.logger.WarnContext(ctx, "rate limit exceeded",
			"client", clientKey,
			"reset_at", decision.ResetAt,
		)
		return h.writeError(w, http.StatusTooManyRequests, types.NewErrorResponse(types.MsgRateLimited))
	}

	prompt := distill.BuildPrompt(req.Text)

	callStart := time.Now()
	raw, err := h.completer.Complete(ctx, apiKey, prompt.System, prompt.User)
	h.metrics.RecordCompletion(h.model, time.Since(callStart), proxy.ErrorType(err))
	if err != nil {
		h.logCompletionError(ctx, err)
		return h.fail(w, err)
	}

	plan, err := h.normalizer.Normalize(raw)
	switch {
	case errors.Is(err, distill.ErrMalformedOutput):
		h.metrics.RecordPlan("malformed", len(plan.Sections))
		h.logger.ErrorContext(ctx, "completion output is not JSON", "error", err, "output_bytes", len(raw))
		return h.fail(w, err)
	case errors.Is(err, distill.ErrInvalidStructure):
		h.metrics.RecordPlan("invalid_structure", 0)
		h.logger.ErrorContext(ctx, "completion output has no sections array", "output_bytes", len(raw))
		return h.fail(w, err)
	case err != nil:
		h.logger.ErrorContext(ctx, "normalization failed", "error", err)
		return h.fail(w, err)
	}

	outcome := "ok"
	if plan.HasFallback() {
		outcome = "fallback_appended"
	}
	h.metrics.RecordPlan(outcome, len(plan.Sections))

	h.logger.InfoContext(ctx, "distill completed",
		"client", clientKey,
		"sections", len(plan.Sections),
		"items", plan.ItemCount(),
		"text_length", utf8.RuneCountInString(req.Text),
	)

	if err := proxy.WritePlan(w, plan); err != nil {
		h.logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
	return http.StatusOK
}

func (h *DistillHandler) logCompletionError(ctx context.Context, err error) {
	var upstreamErr *completion.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.logger.ErrorContext(ctx, "completion API error",
			"status", upstreamErr.StatusCode,
			"message", upstreamErr.Message,
		)
		return
	}
	h.logger.ErrorContext(ctx, "completion failed", "error", err)
}

func (h *DistillHandler) fail(w http.ResponseWriter, err error) int {
	status, errResp := proxy.HandleError(err)
	return h.writeError(w, status, errResp)
}

func (h *DistillHandler) writeError(w http.ResponseWriter, status int, errResp *types.ErrorResponse) int {
	if err := proxy.WriteError(w, status, errResp); err != nil {
		h.logger.Error("failed to write error response", "error", err)
	}
	return status
}

func setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
	w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(d.ResetAt.Unix(), 10))
}

// retryAfterSeconds rounds up so clients never retry inside the window.
func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
