package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/geo"
	"neighborhood-route-service/internal/platform/metrics"
	"neighborhood-route-service/internal/ports"
	"neighborhood-route-service/internal/solver"
)

// ErrUnknownStart reports a requested start neighborhood that is not among
// the neighborhoods selected for the tour.
var ErrUnknownStart = errors.New("start neighborhood not among selected neighborhoods")

type SolveRouteRequest struct {
	// Number of neighborhoods to route over, picked by record count
	// descending. Zero or negative means all of them.
	Limit int

	// Name of the starting neighborhood. Empty selects the neighborhood
	// with the most records.
	Start string

	// Wall-clock budget for the branch-and-bound search.
	TimeLimit time.Duration
}

// Find the shortest closed tour over the requested neighborhoods.
//
// Neighborhoods are loaded from the repository, geocoded, and turned into a
// symmetric great-circle distance matrix. A greedy nearest-neighbor pass
// produces the baseline tour; branch-and-bound then searches for a better
// one within the time budget. The result carries both tours so callers
// can report the improvement.
func SolveRoute(
	ctx context.Context,
	req SolveRouteRequest,
	repo ports.NeighborhoodRepository,
	geocoder ports.Geocoder,
) (*domain.RouteResult, error) {
	began := time.Now()

	result, err := solveRoute(ctx, req, repo, geocoder)

	switch {
	case err != nil:
		metrics.SolveRequests.WithLabelValues("error").Inc()
	case result.Optimal:
		metrics.SolveRequests.WithLabelValues("optimal").Inc()
	default:
		metrics.SolveRequests.WithLabelValues("time_limit").Inc()
	}
	metrics.SolveDuration.Observe(time.Since(began).Seconds())
	if err == nil {
		metrics.SolveNodesExpanded.Observe(float64(result.Metrics.NodesExpanded))
	}

	return result, err
}

func solveRoute(
	ctx context.Context,
	req SolveRouteRequest,
	repo ports.NeighborhoodRepository,
	geocoder ports.Geocoder,
) (*domain.RouteResult, error) {
	if req.TimeLimit <= 0 {
		return nil, errors.New("solve route: time limit must be positive")
	}

	hoods, err := repo.ListNeighborhoods(ctx, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("solve route: list neighborhoods: %w", err)
	}
	if len(hoods) == 0 {
		return nil, errors.New("solve route: no neighborhoods to route over")
	}

	if err := geocodeAll(ctx, hoods, geocoder); err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}

	m, err := geo.NeighborhoodMatrix(hoods)
	if err != nil {
		return nil, fmt.Errorf("solve route: build distance matrix: %w", err)
	}

	start, err := startIndex(hoods, req.Start)
	if err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}

	heurPath, heurCost := solver.NearestNeighbor(m, start)

	res, err := solver.Solve(m, start, req.TimeLimit)
	if err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}

	return &domain.RouteResult{
		Start:     hoods[start].Name,
		Heuristic: domain.Tour{Stops: namedStops(hoods, heurPath), TotalKm: heurCost},
		Best:      domain.Tour{Stops: namedStops(hoods, res.Tour), TotalKm: res.Cost},
		Optimal:   res.Optimal,
		Metrics: domain.SearchMetrics{
			NodesExpanded:  res.Metrics.NodesExpanded,
			MaxDepth:       res.Metrics.MaxDepth,
			ToursFound:     res.Metrics.ToursFound,
			ElapsedSeconds: res.Metrics.Elapsed.Seconds(),
			TimeLimitHit:   res.Metrics.TimeLimitHit,
		},
	}, nil
}

// Resolve coordinates for every neighborhood, in place. A batch-capable
// geocoder is used with a single call when available so cached lookups
// collapse into one round trip.
func geocodeAll(ctx context.Context, hoods []*domain.Neighborhood, geocoder ports.Geocoder) error {
	if bg, ok := geocoder.(ports.BatchGeocoder); ok {
		names := make([]string, len(hoods))
		for i, h := range hoods {
			names[i] = h.Name
		}

		coords, err := bg.GeocodeMany(ctx, names)
		if err != nil {
			return fmt.Errorf("geocode neighborhoods: %w", err)
		}

		for _, h := range hoods {
			c, ok := coords[h.Name]
			if !ok {
				return fmt.Errorf("geocode neighborhoods: no coordinates for %q", h.Name)
			}
			h.Coords = &c
		}
		return nil
	}

	for _, h := range hoods {
		c, err := geocoder.Geocode(ctx, h.Name)
		if err != nil {
			return fmt.Errorf("geocode neighborhood %q: %w", h.Name, err)
		}
		h.Coords = &c
	}
	return nil
}

// Locate the requested start neighborhood by case-insensitive name match.
// An empty name selects index 0, which holds the neighborhood with the most
// records after repository ordering.
func startIndex(hoods []*domain.Neighborhood, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}

	for i, h := range hoods {
		if strings.EqualFold(h.Name, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("start neighborhood %q: %w", name, ErrUnknownStart)
}

func namedStops(hoods []*domain.Neighborhood, path []int) []string {
	stops := make([]string, len(path))
	for i, idx := range path {
		stops[i] = hoods[idx].Name
	}
	return stops
}
