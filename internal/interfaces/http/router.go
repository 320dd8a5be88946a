package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CentralBankTalk/internal/interfaces/http/handlers"
	"github.com/turtacn/CentralBankTalk/internal/interfaces/http/middleware"
)

// DefaultMetricsPath is where Prometheus scrapes when no path is configured.
const DefaultMetricsPath = "/metrics"

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	AtlasHandler  *handlers.AtlasHandler
	HealthHandler *handlers.HealthHandler

	// Middleware. A nil CORS config disables CORS headers.
	CORS    *middleware.CORSConfig
	Logging middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	MetricsCollector prometheus.MetricsCollector
	Metrics          *prometheus.AppMetrics
	MetricsPath      string
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(chimw.Recoverer)
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}

	// --- Health ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = DefaultMetricsPath
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	// --- API v1 ---
	r.Route("/api/v1", func(api chi.Router) {
		registerAtlasRoutes(api, cfg.AtlasHandler)
	})

	return r
}

// registerAtlasRoutes mounts the catalog, choropleth, feature, color and
// interaction endpoints.
func registerAtlasRoutes(r chi.Router, h *handlers.AtlasHandler) {
	if h == nil {
		return
	}
	r.Get("/indicators", h.Indicators)
	r.Get("/palettes", h.Palettes)
	r.Get("/institutions", h.Institutions)
	r.Get("/institutions/{"+handlers.InstitutionIDParam+"}", h.InstitutionHistory)

	r.Route("/choropleth", func(cr chi.Router) {
		cr.Get("/", h.Choropleth)
		cr.Get("/geojson", h.ChoroplethGeoJSON)
	})

	r.Route("/features/{"+handlers.FeatureNameParam+"}", func(fr chi.Router) {
		fr.Get("/value", h.FeatureValue)
		fr.Get("/detail", h.FeatureDetail)
	})

	r.Route("/colors", func(cr chi.Router) {
		cr.Get("/scale", h.ScaleColor)
		cr.Get("/darken", h.Darken)
	})

	r.Post("/interaction", h.Interact)
}

//Personal.AI order the ending
