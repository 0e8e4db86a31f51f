package ports

import (
	"context"

	"neighborhood-route-service/internal/domain"
)

// Port: a boundary for retrieving aggregated Neighborhood entities from a
// data source.
type NeighborhoodRepository interface {
	// Retrieve neighborhoods ordered by record count descending, capped at
	// limit when limit > 0.
	ListNeighborhoods(ctx context.Context, limit int) ([]*domain.Neighborhood, error)
}
