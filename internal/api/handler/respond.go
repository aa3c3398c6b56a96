package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apimw "github.com/edivorce/edivorce-api/internal/api/middleware"
	"github.com/edivorce/edivorce-api/internal/domain"
)

// Hooks carries the metric callbacks injected by main. Nil fields are no-ops.
type Hooks struct {
	OnDebugAction   func(action string)
	OnQuestionCount func(n int)
}

func (h Hooks) withDefaults() Hooks {
	if h.OnDebugAction == nil {
		h.OnDebugAction = func(string) {}
	}
	if h.OnQuestionCount == nil {
		h.OnQuestionCount = func(int) {}
	}
	return h
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// respondStatus writes the bare status text, the same way for every page.
func respondStatus(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// mapError translates domain sentinel errors to HTTP status codes.
// Anything unrecognised is a 500; its detail goes to the log only.
func mapError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondStatus(w, http.StatusNotFound)
	default:
		logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		respondStatus(w, http.StatusInternalServerError)
	}
}
