package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/edivorce/edivorce-api/internal/api/handler"
	apimw "github.com/edivorce/edivorce-api/internal/api/middleware"
	"github.com/edivorce/edivorce-api/internal/domain"
	"github.com/edivorce/edivorce-api/internal/ratelimiter"
	"github.com/edivorce/edivorce-api/internal/repository"
	"github.com/edivorce/edivorce-api/internal/service"
	"github.com/edivorce/edivorce-api/internal/session"
	"github.com/edivorce/edivorce-api/internal/web"
)

// Deps is everything the HTTP surface needs. Observe and Hooks are optional.
type Deps struct {
	Service     *service.SystemService
	Users       repository.UserRepository
	Sessions    *session.Manager
	Renderer    *web.Renderer
	Limiter     *ratelimiter.ClientLimiters
	Environment domain.Environment
	Identity    apimw.IdentityOptions
	Gatherer    prometheus.Gatherer
	Observe     apimw.ObserveFunc
	Hooks       handler.Hooks
	Logger      *zap.Logger
}

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)          // recover panics, return 500
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body
	r.Use(apimw.CorrelationID)      // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(d.Logger, d.Observe))

	// --- handler instances ---
	hh := handler.NewHealthHandler(d.Service, d.Logger, d.Hooks)
	dh := handler.NewDebugHandler(d.Service, d.Renderer, d.Sessions, d.Environment, d.Logger, d.Hooks)

	// --- routes ---
	r.Get("/health", hh.Health)

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// Debug tools are rate limited per client. /current is gated on the
	// environment before anything else and resolves the signed-in user.
	r.With(apimw.RateLimit(d.Limiter)).Get("/headers", dh.Headers)

	r.With(
		apimw.DebugOnly(d.Environment),
		apimw.RateLimit(d.Limiter),
		apimw.Identity(d.Sessions, d.Users, d.Identity, d.Logger),
	).Get("/current", dh.Current)

	return r
}
