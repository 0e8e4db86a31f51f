package geo

import (
	"fmt"

	"neighborhood-route-service/internal/domain"
)

// BuildMatrix assembles the symmetric great-circle distance matrix for the
// given coordinates. The i,j and j,i entries are written from a single
// haversine computation, so the result is exactly symmetric with a zero
// diagonal.
func BuildMatrix(coords []domain.Coordinates) [][]float64 {
	n := len(coords)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Haversine(coords[i], coords[j])
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

// NeighborhoodMatrix builds the distance matrix for a slice of geocoded
// neighborhoods, failing on the first one without coordinates.
func NeighborhoodMatrix(hoods []*domain.Neighborhood) ([][]float64, error) {
	coords := make([]domain.Coordinates, len(hoods))
	for i, h := range hoods {
		if h.Coords == nil {
			return nil, fmt.Errorf("build matrix: neighborhood %q has no coordinates", h.Name)
		}
		coords[i] = *h.Coords
	}
	return BuildMatrix(coords), nil
}

// CodeProxyMatrix derives a demonstration distance matrix from numeric
// neighborhood codes when geocoding is unavailable: d(i,j) is the absolute
// code difference scaled down by 1000. Useful only for offline runs; the
// values carry no geographic meaning.
func CodeProxyMatrix(codes []int) [][]float64 {
	n := len(codes)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			diff := codes[i] - codes[j]
			if diff < 0 {
				diff = -diff
			}
			m[i][j] = float64(diff) / 1000.0
		}
	}
	return m
}
