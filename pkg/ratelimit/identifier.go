package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the key used when no client address can be determined.
const UnknownClient = "unknown"

// ClientKey resolves the throttling key for r: the first X-Forwarded-For
// entry, then X-Real-IP, then the peer address without its port.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "" {
			return host
		}
	}

	return UnknownClient
}
