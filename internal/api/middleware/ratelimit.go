package middleware

import (
	"net"
	"net/http"

	"github.com/edivorce/edivorce-api/internal/ratelimiter"
)

// RateLimit rejects clients that exceed their token bucket with 429.
// Clients are keyed by IP; run it after chi's RealIP.
func RateLimit(limiter *ratelimiter.ClientLimiters) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
