package geocode

import (
	"context"
	"fmt"

	"neighborhood-route-service/internal/domain"
)

// StaticGeocoder serves a fixed name -> coordinates table. Used in tests and
// for offline runs with pre-resolved datasets.
type StaticGeocoder struct {
	m map[string]domain.Coordinates
}

func NewStaticGeocoder(table map[string]domain.Coordinates) *StaticGeocoder {
	m := make(map[string]domain.Coordinates, len(table))
	for k, v := range table {
		m[normalize(k)] = v
	}
	return &StaticGeocoder{m: m}
}

func (s *StaticGeocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, error) {
	coords, ok := s.m[normalize(name)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("static geocode: unknown name %q", name)
	}
	return coords, nil
}
