package ports

import (
	"context"

	"neighborhood-route-service/internal/domain"
)

// Persistent name -> coordinates cache sitting in front of a Geocoder.
// GetMany returns only the names it has; absent keys are simply missing from
// the result, never an error.
type GeocodeCache interface {
	GetMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
