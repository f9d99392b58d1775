package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/supplydesk/internal/auth"
	"github.com/odyssey-erp/supplydesk/internal/dashboard"
	"github.com/odyssey-erp/supplydesk/internal/observability"
	"github.com/odyssey-erp/supplydesk/internal/platform/httpx"
	"github.com/odyssey-erp/supplydesk/internal/shared"
	"github.com/odyssey-erp/supplydesk/internal/supplyrequests"
	"github.com/odyssey-erp/supplydesk/web"
)

// HealthCheck reports whether one dependency is reachable for /readyz.
type HealthCheck func(ctx context.Context) error

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger                *slog.Logger
	Config                *Config
	SessionManager        *shared.SessionManager
	CSRFManager           *shared.CSRFManager
	AuthHandler           *auth.Handler
	DashboardHandler      *dashboard.Handler
	SupplyRequestsHandler *supplyrequests.Handler
	Metrics               *observability.Metrics
	HealthChecks          map[string]HealthCheck
}

// NewRouter constructs the chi.Router with SupplyDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readinessHandler(logger, params.HealthChecks))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.AuthHandler != nil {
		r.Route("/auth", params.AuthHandler.MountRoutes)
	}
	if params.DashboardHandler != nil {
		params.DashboardHandler.MountRoutes(r)
	}
	if params.SupplyRequestsHandler != nil {
		r.Route("/api/supply-requests", func(r chi.Router) {
			r.Use(auth.RequireLoginAPI)
			params.SupplyRequestsHandler.MountRoutes(r)
		})
	}

	staticFS, err := web.Static()
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

func readinessHandler(logger *slog.Logger, checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Warn("readiness check failed", slog.String("dependency", name), slog.Any("error", err))
				result[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}
		httpx.JSON(w, status, result)
	}
}

// staticCacheHandler lets browsers keep embedded assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
