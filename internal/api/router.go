package api

import (
	"net/http"
	"time"

	"neighborhood-route-service/internal/api/handlers"
	"neighborhood-route-service/internal/platform/metrics"
	"neighborhood-route-service/internal/ports"
)

// RouterOptions carries the solve defaults applied when a request omits them.
type RouterOptions struct {
	DefaultTimeLimit time.Duration
	DefaultLimit     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.NeighborhoodRepository, geocoder ports.Geocoder, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	hoodHandler := &handlers.NeighborhoodHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{
		Repo:             repo,
		Geocoder:         geocoder,
		DefaultTimeLimit: opts.DefaultTimeLimit,
		DefaultLimit:     opts.DefaultLimit,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/neighborhoods", hoodHandler.List)
	mux.HandleFunc("/routes/solve", routeHandler.Solve)
	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(mux)
}
