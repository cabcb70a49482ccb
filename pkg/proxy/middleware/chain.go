package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first one listed is the outermost.
//
//	Chain(h, RecoveryMiddleware, RequestIDMiddleware, LoggingMiddleware)
//	// == RecoveryMiddleware(RequestIDMiddleware(LoggingMiddleware(h)))
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
