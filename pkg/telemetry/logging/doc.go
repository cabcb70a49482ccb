// Package logging configures log/slog for the service.
//
//	logger, err := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//	slog.SetDefault(logger)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "distill completed") // includes request_id
//
// With RedactSecrets enabled, sk-style keys and bearer tokens are masked in
// every string or error attribute, and attributes whose key names look
// sensitive (api_key, authorization, token...) are replaced entirely.
package logging
