package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	// RequestIDKey is the context key and log attribute for request IDs.
	RequestIDKey contextKey = "request_id"

	// ClientKey is the context key for the rate limit client key.
	ClientKey contextKey = "client"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFromContext retrieves the request ID from the context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithClient adds the resolved client key to the context.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, ClientKey, client)
}

// ClientFromContext retrieves the client key from the context.
func ClientFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if client, ok := ctx.Value(ClientKey).(string); ok {
		return client
	}
	return ""
}

// FromContext returns slog.Default with the client attribute attached when
// present. The request ID is added by the handler built in New.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if client := ClientFromContext(ctx); client != "" {
		logger = logger.With(string(ClientKey), client)
	}
	return logger
}
