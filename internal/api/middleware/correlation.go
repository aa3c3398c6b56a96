package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	userKey          contextKey = "user"
)

const (
	correlationHeader = "X-Correlation-ID"
	maxCorrelationLen = 64
)

// CorrelationID tags each request with an id that shows up in every log line
// it produces. An id supplied by the caller is reused when it is
// short enough; otherwise a fresh one is minted. The id is sent back on the
// response.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := correlationFrom(r)
		w.Header().Set(correlationHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), correlationIDKey, id)))
	})
}

func correlationFrom(r *http.Request) string {
	if id := r.Header.Get(correlationHeader); id != "" && len(id) <= maxCorrelationLen {
		return id
	}
	return uuid.NewString()
}

// GetCorrelationID is empty outside the CorrelationID middleware.
func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
