package api

import (
	"geo-match-service/internal/api/handlers"
	"geo-match-service/internal/services"
	"net/http"

	"golang.org/x/time/rate"
)

// Dependencies of the HTTP surface. Runner is required; the rest are optional.
type RouterConfig struct {
	Runner    *services.MatchRunner
	Checks    map[string]handlers.HealthCheck
	Limiter   *rate.Limiter
	MaxPoints int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Checks: cfg.Checks}
	geoHandler := &handlers.GeoHandler{MaxPoints: cfg.MaxPoints}
	runHandler := &handlers.RunHandler{
		Runner: cfg.Runner,
		Points: *geoHandler,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/parse", geoHandler.Parse)
	mux.HandleFunc("/distance", geoHandler.Distance)
	mux.HandleFunc("/closest", geoHandler.Closest)
	mux.HandleFunc("/pairs", runHandler.Pairs)
	mux.HandleFunc("/runs/{id}", runHandler.Get)

	// Health stays outside the limiter so probes are never throttled.
	limited := rateLimitMiddleware(cfg.Limiter, mux)
	root := http.NewServeMux()
	root.Handle("/health", mux)
	root.Handle("/", limited)

	return requestIDMiddleware(loggingMiddleware(root))
}
