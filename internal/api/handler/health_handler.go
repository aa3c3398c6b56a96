package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/edivorce/edivorce-api/internal/service"
)

// HealthHandler serves the liveness probe used by OpenShift.
type HealthHandler struct {
	svc    *service.SystemService
	logger *zap.Logger
	hooks  Hooks
}

func NewHealthHandler(svc *service.SystemService, logger *zap.Logger, hooks Hooks) *HealthHandler {
	return &HealthHandler{svc: svc, logger: logger, hooks: hooks.withDefaults()}
}

// Health handles GET /health
//
// The body is the number of questions in the store, as plain text. A store
// failure is a 500; there is no retry.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.QuestionCount(r.Context())
	if err != nil {
		mapError(w, r, h.logger, err)
		return
	}
	h.hooks.OnQuestionCount(n)

	w.Header().Set("Cache-Control", "no-cache")
	respondText(w, http.StatusOK, strconv.Itoa(n))
}
