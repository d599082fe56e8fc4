package api

import (
	"carp-solver/internal/api/handlers"
	"carp-solver/internal/config"
	"carp-solver/internal/metrics"
	"carp-solver/internal/ports"
	"carp-solver/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.InstanceRepository, builders *services.BuilderRegistry, cfg config.Config) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Builders: builders}
	instanceHandler := &handlers.InstanceHandler{Repo: repo}
	solveHandler := &handlers.SolveHandler{
		Repo:        repo,
		Builders:    builders,
		Defaults:    cfg.Solver,
		MaxVertices: cfg.Server.MaxVertices,
	}

	// Floyd–Warshall is cubic in the vertex count; solve admission is throttled.
	limit := rate.Inf
	if cfg.Server.SolveRatePerSec > 0 {
		limit = rate.Limit(cfg.Server.SolveRatePerSec)
	}
	limiter := rate.NewLimiter(limit, max(cfg.Server.SolveBurst, 1))

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/instances", instanceHandler.List)
	mux.Handle("/solve", rateLimitMiddleware(limiter, http.HandlerFunc(solveHandler.Solve)))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
