// Package rest serves the underwriting API and operational probes over HTTP.
package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/psspowers/underwriting/pkg/auth"
)

// RouterConfig holds everything the HTTP surface needs.
type RouterConfig struct {
	Handler        *UnderwritingHandler
	Health         *HealthHandler
	JWT            *auth.JWTService
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// NewRouter builds the chi router. Probes and /metrics are unauthenticated,
// taxonomy browsing needs any valid token, and record routes need internal staff.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", cfg.Health.liveness)
	r.Get("/readyz", cfg.Health.readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	h := cfg.Handler
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWT))

		r.Route("/taxonomy", func(r chi.Router) {
			r.Get("/sectors", h.listSectors)
			r.Get("/sectors/{sector}/industries", h.listIndustries)
			r.Get("/industries/{industry}/sub-industries", h.listSubIndustries)
			r.Get("/sub-industries/{subIndustry}", h.lookupSubIndustry)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireInternalStaffHTTP)
			r.Post("/records/{recordType}/{recordID}/classification", h.classifyRecord)
			r.Post("/records/{recordType}/{recordID}/scrutiny", h.evaluateScrutiny)
			r.Get("/records/{recordType}/{recordID}/assessments", h.listRecordAssessments)
			r.Get("/assessments/{id}", h.getAssessmentByID)
		})
	})
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
