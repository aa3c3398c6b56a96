package handler

import (
	"context"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	apimw "github.com/edivorce/edivorce-api/internal/api/middleware"
	"github.com/edivorce/edivorce-api/internal/domain"
	"github.com/edivorce/edivorce-api/internal/service"
	"github.com/edivorce/edivorce-api/internal/session"
	"github.com/edivorce/edivorce-api/internal/web"
)

// DebugHandler serves the header dump and the current-state debug tool.
type DebugHandler struct {
	svc         *service.SystemService
	renderer    *web.Renderer
	sessions    *session.Manager
	environment domain.Environment
	logger      *zap.Logger
	hooks       Hooks
}

func NewDebugHandler(
	svc *service.SystemService,
	renderer *web.Renderer,
	sessions *session.Manager,
	environment domain.Environment,
	logger *zap.Logger,
	hooks Hooks,
) *DebugHandler {
	return &DebugHandler{
		svc:         svc,
		renderer:    renderer,
		sessions:    sessions,
		environment: environment,
		logger:      logger,
		hooks:       hooks.withDefaults(),
	}
}

// Headers handles GET /headers
func (h *DebugHandler) Headers(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, web.PageHeaders, web.HeaderDump{
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		Headers:    web.SortedHeaders(withHost(r)),
	})
}

// withHost returns the request headers with Host put back; net/http moves
// it to r.Host.
func withHost(r *http.Request) http.Header {
	h := r.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if r.Host != "" {
		h.Set("Host", r.Host)
	}
	return h
}

// Current handles GET /current
//
// Only available in localdev, dev, test and minishift; 404 elsewhere.
// ?reset deletes the signed-in user and flushes the session, ?intercept
// re-arms the orders intercept and ?terms toggles terms acceptance. Each of
// those redirects back here; with no flag the dashboard is rendered.
func (h *DebugHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := h.svc.CurrentState(ctx, service.CurrentStateRequest{
		Environment: h.environment,
		Flags:       parseDebugFlags(r.URL.Query()),
		User:        apimw.CurrentUser(ctx),
		FlushSession: func(ctx context.Context) error {
			next, err := h.sessions.FlushContext(ctx, w)
			if err != nil {
				return err
			}
			r = r.WithContext(next)
			return nil
		},
	})
	if err != nil {
		mapError(w, r, h.logger, err)
		return
	}
	h.hooks.OnDebugAction(string(st.Action))

	if st.Redirect {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
		return
	}

	h.render(w, r, web.PageCurrent, web.CurrentPage{
		Nav:         web.Nav{Hidden: st.HideNav},
		HideNav:     st.HideNav,
		IsAnonymous: st.IsAnonymous,
		Responses:   st.Responses,
	})
}

func (h *DebugHandler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := h.renderer.Render(w, http.StatusOK, page, data); err != nil {
		mapError(w, r, h.logger, err)
	}
}

// parseDebugFlags checks key presence only; values, even empty ones, are
// never inspected.
func parseDebugFlags(q url.Values) service.DebugFlags {
	has := func(key string) bool {
		_, ok := q[key]
		return ok
	}
	return service.DebugFlags{
		Reset:     has("reset"),
		Intercept: has("intercept"),
		Terms:     has("terms"),
	}
}
