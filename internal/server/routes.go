package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendboard/internal/corpus"
	"trendboard/internal/handlers"
	"trendboard/internal/handlers/api"
	"trendboard/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(corp *corpus.Corpus) {
	// Initialize middleware
	datasetMiddleware := middleware.NewDatasetMiddleware(corp, s.Cfg.DataRoot)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(s.Cfg)
	healthHandler := handlers.NewHealthHandler(corp, s.Cfg)
	dataAPI := api.NewDataHandler(s.Cfg)

	// Frontend
	s.App.Get("/", datasetMiddleware.RequireDataset, dashboardHandler.Index)

	// JSON API
	apiGroup := s.App.Group("/api", datasetMiddleware.RequireDatasetJSON)
	apiGroup.Get("/options", dataAPI.Options)
	apiGroup.Get("/aggregate", dataAPI.Aggregate)
	apiGroup.Get("/records", dataAPI.Records)

	// Operations
	s.App.Get("/healthz", healthHandler.Live)
	s.App.Get("/readyz", healthHandler.Ready)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
