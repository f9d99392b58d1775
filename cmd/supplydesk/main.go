package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/supplydesk/internal/app"
	"github.com/odyssey-erp/supplydesk/internal/auth"
	"github.com/odyssey-erp/supplydesk/internal/dashboard"
	"github.com/odyssey-erp/supplydesk/internal/observability"
	"github.com/odyssey-erp/supplydesk/internal/platform/cache"
	"github.com/odyssey-erp/supplydesk/internal/platform/db"
	"github.com/odyssey-erp/supplydesk/internal/rbac"
	"github.com/odyssey-erp/supplydesk/internal/shared"
	"github.com/odyssey-erp/supplydesk/internal/supplyrequests"
	"github.com/odyssey-erp/supplydesk/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "supplydesk_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	userStore, err := newUserStore(cfg, dbpool)
	if err != nil {
		logger.Error("build user store", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	rbacService := rbac.NewService(rbac.DefaultGrants)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	requestService := supplyrequests.NewService(supplyrequests.NewRepository(dbpool))

	router := app.NewRouter(app.RouterParams{
		Logger:                logger,
		Config:                cfg,
		SessionManager:        sessionManager,
		CSRFManager:           csrfManager,
		AuthHandler:           auth.NewHandler(logger, auth.NewService(userStore), templates, sessionManager, csrfManager).WithLoginRecorder(metrics),
		DashboardHandler:      dashboard.NewHandler(logger, templates, csrfManager, requestService, rbacService),
		SupplyRequestsHandler: supplyrequests.NewHandler(logger, requestService, rbacMiddleware, metrics),
		Metrics:               metrics,
		HealthChecks: map[string]app.HealthCheck{
			"postgres": dbpool.Ping,
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("auth_backend", cfg.AuthBackend))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func newUserStore(cfg *app.Config, pool *pgxpool.Pool) (auth.UserStore, error) {
	if cfg.AuthBackend == "postgres" {
		return auth.NewPGStore(pool), nil
	}
	creds, err := auth.ParseCredentials(cfg.AuthUsers)
	if err != nil {
		return nil, err
	}
	return auth.NewStaticStore(creds)
}
