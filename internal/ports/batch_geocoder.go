package ports

import (
	"context"

	"neighborhood-route-service/internal/domain"
)

// Optional extension of Geocoder that supports batched lookups.
type BatchGeocoder interface {
	Geocoder
	// Resolve many neighborhood names at once. The returned map is keyed
	// by the names exactly as the caller supplied them, even when the
	// implementation normalizes them internally.
	GeocodeMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error)
}
