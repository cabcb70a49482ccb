package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"brainstormer-hq/distill/pkg/proxy"
	"brainstormer-hq/distill/pkg/proxy/types"
	"brainstormer-hq/distill/pkg/ratelimit"
)

// RecoveryMiddleware turns a panic in a handler into a 500 with the generic
// internal error body. The panic value and stack are logged only. When the
// handler already sent a status line the response is left as is.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "panic in handler",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"client", ratelimit.ClientKey(r),
				"headers_sent", rw.written,
				"stack", string(debug.Stack()),
			)

			if rw.written {
				return
			}
			_ = proxy.WriteError(rw, http.StatusInternalServerError,
				types.NewErrorResponse(types.MsgInternalServerError))
		}()

		next.ServeHTTP(rw, r)
	})
}
