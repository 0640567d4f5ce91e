package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lawdesk/internal/handlers/api"
	"lawdesk/internal/middleware"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Resolver api.Resolver
	DB       api.Pinger // nil when the query log is disabled
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg.AdminToken)

	queryHandler := api.NewQueryHandler(deps.Resolver)
	diagnosticHandler := api.NewDiagnosticHandler(deps.Resolver, s.Logger)
	probeHandler := api.NewProbeHandler(deps.DB)

	if s.Cfg.AdminToken == "" {
		s.Logger.Warn("ADMIN_TOKEN not set, /test_api is unauthenticated")
	}

	s.App.Post("/query", queryHandler.Query)
	s.App.Get("/topics", queryHandler.Topics)
	s.App.Get("/test_api", authMiddleware.RequireAdmin, diagnosticHandler.TestAPI)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
