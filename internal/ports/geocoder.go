package ports

import (
	"context"

	"neighborhood-route-service/internal/domain"
)

// Contract for resolving neighborhood names to geographic coordinates.
type Geocoder interface {
	// Return coordinates for a single neighborhood name.
	Geocode(ctx context.Context, name string) (domain.Coordinates, error)
}
