// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server wraps its mux in this order, outermost first:
//
//	Chain(mux, RecoveryMiddleware, RequestIDMiddleware, LoggingMiddleware, CORSMiddleware(cfg))
//
// RequestIDMiddleware runs before logging so that every access log record
// carries the request ID. Recovery sits outside everything so a panic in
// any layer still produces the JSON 500 body:
//
//	{"error": "Internal server error"}
//
// # Request ID
//
// A client-supplied X-Request-ID is reused when it is at most 128 printable
// ASCII characters; otherwise a UUID v4 is generated. The ID is echoed in
// the response header.
//
// # CORS
//
// CORS settings come from server.cors in the configuration. Preflight
// requests are answered directly with 204.
package middleware
