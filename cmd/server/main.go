package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/edivorce/edivorce-api/internal/api"
	"github.com/edivorce/edivorce-api/internal/api/handler"
	apimw "github.com/edivorce/edivorce-api/internal/api/middleware"
	"github.com/edivorce/edivorce-api/internal/config"
	"github.com/edivorce/edivorce-api/internal/db"
	"github.com/edivorce/edivorce-api/internal/domain"
	"github.com/edivorce/edivorce-api/internal/metrics"
	"github.com/edivorce/edivorce-api/internal/ratelimiter"
	"github.com/edivorce/edivorce-api/internal/repository"
	"github.com/edivorce/edivorce-api/internal/service"
	"github.com/edivorce/edivorce-api/internal/session"
	"github.com/edivorce/edivorce-api/internal/web"
	"github.com/edivorce/edivorce-api/internal/worker"
)

const (
	limiterIdle          = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to read .env", zap.Error(err))
	}

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	env := domain.Environment(cfg.Environment)
	logger = logger.With(zap.String("environment", cfg.Environment))
	if env.DebugEnabled() {
		logger.Warn("debug tools enabled", zap.Strings("routes", []string{"/headers", "/current"}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- database ----
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	onDebugAction, onQuestionCount := m.Hooks()

	questions := repository.NewPgQuestionRepository(pool)
	users := repository.NewPgUserRepository(pool)
	svc := service.NewSystemService(questions, users, logger)

	sessions := session.NewManager(session.NewRedisStore(rdb, cfg.SessionTTL), session.Options{
		CookieName: cfg.SessionCookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.SessionCookieSecure,
	})

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	limiter := ratelimiter.New(cfg.DebugRateLimit, limiterIdle)

	// ---- HTTP server ----
	router := api.NewRouter(api.Deps{
		Service:     svc,
		Users:       users,
		Sessions:    sessions,
		Renderer:    renderer,
		Limiter:     limiter,
		Environment: env,
		Identity: apimw.IdentityOptions{
			AuthHeader:        cfg.AuthHeader,
			DisplayNameHeader: cfg.DisplayNameHeader,
		},
		Gatherer: reg,
		Observe:  m.ObserveRequest,
		Hooks:    handler.Hooks{OnDebugAction: onDebugAction, OnQuestionCount: onQuestionCount},
		Logger:   logger,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		worker.NewSweeper(limiter, limiterSweepInterval, logger).Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// ---- graceful shutdown ----
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("server stopped cleanly")
}
