// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SolveRequests counts optimization runs by outcome: "optimal",
	// "time_limit", or "error".
	SolveRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_solve_requests_total",
		Help: "Route optimization runs by outcome.",
	}, []string{"outcome"})

	SolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_solve_duration_seconds",
		Help:    "Wall-clock duration of route optimization runs.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	SolveNodesExpanded = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_solve_nodes_expanded",
		Help:    "Search nodes expanded per optimization run.",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10),
	})

	GeocodeCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocode_cache_hits_total",
		Help: "Neighborhood names resolved from the geocode cache.",
	})

	GeocodeCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geocode_cache_misses_total",
		Help: "Neighborhood names that required a provider call.",
	})
)

// Handler serves the default Prometheus registry.
func Handler() http.Handler { return promhttp.Handler() }
