package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// responseWriter wraps http.ResponseWriter to capture the status code and
// body size written by the handler so we can log them after the fact.
type responseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// ObserveFunc receives one completed request; route is the chi pattern.
type ObserveFunc func(method, route string, status int, latency time.Duration)

// RequestLogger returns a middleware that emits a structured zap log line
// for every completed HTTP request and reports it to observe (may be nil).
func RequestLogger(logger *zap.Logger, observe ObserveFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			latency := time.Since(start)
			route := routePattern(r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", wrapped.status),
				zap.Int("bytes", wrapped.bytes),
				zap.Duration("latency", latency),
				zap.String("correlation_id", GetCorrelationID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr),
			)

			if observe != nil {
				observe(r.Method, route, wrapped.status, latency)
			}
		})
	}
}

// routePattern keeps metric labels bounded: unmatched paths collapse to a
// single value.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
