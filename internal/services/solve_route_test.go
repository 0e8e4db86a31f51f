package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"neighborhood-route-service/internal/adapters/geocode"
	"neighborhood-route-service/internal/domain"
)

type fakeRepo struct {
	hoods []*domain.Neighborhood
	err   error
}

func (f *fakeRepo) ListNeighborhoods(ctx context.Context, limit int) ([]*domain.Neighborhood, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.hoods) {
		return f.hoods[:limit], nil
	}
	return f.hoods, nil
}

// batchGeocoder counts GeocodeMany invocations so tests can assert the
// batch path is preferred over per-name lookups.
type batchGeocoder struct {
	inner      *geocode.StaticGeocoder
	batchCalls int
}

func (b *batchGeocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, error) {
	return b.inner.Geocode(ctx, name)
}

func (b *batchGeocoder) GeocodeMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error) {
	b.batchCalls++
	out := make(map[string]domain.Coordinates, len(names))
	for _, n := range names {
		c, err := b.inner.Geocode(ctx, n)
		if err != nil {
			return nil, err
		}
		out[n] = c
	}
	return out, nil
}

func curitibaTable() map[string]domain.Coordinates {
	return map[string]domain.Coordinates{
		"Centro":           {Lat: -25.4284, Lon: -49.2733},
		"Batel":            {Lat: -25.4420, Lon: -49.2870},
		"Agua Verde":       {Lat: -25.4530, Lon: -49.2860},
		"Boqueirao":        {Lat: -25.5070, Lon: -49.2430},
		"Santa Felicidade": {Lat: -25.4070, Lon: -49.3380},
	}
}

func curitibaRepo() *fakeRepo {
	return &fakeRepo{hoods: []*domain.Neighborhood{
		{Code: 1, Name: "Centro", Count: 500},
		{Code: 2, Name: "Batel", Count: 300},
		{Code: 3, Name: "Agua Verde", Count: 200},
		{Code: 4, Name: "Boqueirao", Count: 150},
		{Code: 5, Name: "Santa Felicidade", Count: 100},
	}}
}

func TestSolveRoute(t *testing.T) {
	repo := curitibaRepo()
	gc := geocode.NewStaticGeocoder(curitibaTable())

	res, err := SolveRoute(context.Background(), SolveRouteRequest{
		TimeLimit: 5 * time.Second,
	}, repo, gc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Start != "Centro" {
		t.Fatalf("start = %q, want Centro (highest record count)", res.Start)
	}
	if !res.Optimal {
		t.Fatal("expected a proven-optimal tour for 5 neighborhoods")
	}
	if res.Best.TotalKm > res.Heuristic.TotalKm {
		t.Fatalf("best tour %.3f km is worse than the greedy baseline %.3f km",
			res.Best.TotalKm, res.Heuristic.TotalKm)
	}
	if got, want := len(res.Best.Stops), len(repo.hoods)+1; got != want {
		t.Fatalf("best tour has %d stops, want %d", got, want)
	}
	if first, last := res.Best.Stops[0], res.Best.Stops[len(res.Best.Stops)-1]; first != "Centro" || last != "Centro" {
		t.Fatalf("tour must start and end at Centro, got %q .. %q", first, last)
	}
	if res.Metrics.NodesExpanded == 0 {
		t.Fatal("expected the search to expand at least the root node")
	}
}

func TestSolveRouteNamedStart(t *testing.T) {
	res, err := SolveRoute(context.Background(), SolveRouteRequest{
		Start:     "  batel ",
		TimeLimit: 5 * time.Second,
	}, curitibaRepo(), geocode.NewStaticGeocoder(curitibaTable()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Start != "Batel" {
		t.Fatalf("start = %q, want Batel", res.Start)
	}
	if res.Best.Stops[0] != "Batel" {
		t.Fatalf("tour starts at %q, want Batel", res.Best.Stops[0])
	}
}

func TestSolveRouteLimit(t *testing.T) {
	res, err := SolveRoute(context.Background(), SolveRouteRequest{
		Limit:     3,
		TimeLimit: 5 * time.Second,
	}, curitibaRepo(), geocode.NewStaticGeocoder(curitibaTable()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(res.Best.Stops), 4; got != want {
		t.Fatalf("limited tour has %d stops, want %d", got, want)
	}
}

func TestSolveRoutePrefersBatchGeocoding(t *testing.T) {
	gc := &batchGeocoder{inner: geocode.NewStaticGeocoder(curitibaTable())}

	if _, err := SolveRoute(context.Background(), SolveRouteRequest{
		TimeLimit: 5 * time.Second,
	}, curitibaRepo(), gc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gc.batchCalls != 1 {
		t.Fatalf("batch geocoder called %d times, want exactly 1", gc.batchCalls)
	}
}

func TestSolveRouteNamesWithExtraWhitespace(t *testing.T) {
	repo := &fakeRepo{hoods: []*domain.Neighborhood{
		{Code: 1, Name: "Centro", Count: 500},
		{Code: 2, Name: "Batel", Count: 300},
		{Code: 3, Name: "Agua  Verde", Count: 200},
	}}
	gc, err := geocode.NewCachedGeocoder(nil, geocode.NewStaticGeocoder(curitibaTable()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := SolveRoute(context.Background(), SolveRouteRequest{
		TimeLimit: 5 * time.Second,
	}, repo, gc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, stop := range res.Best.Stops {
		if stop == "Agua  Verde" {
			found = true
		}
	}
	if !found {
		t.Fatalf("tour %v is missing the stored neighborhood name", res.Best.Stops)
	}
}

func TestSolveRouteErrors(t *testing.T) {
	gc := geocode.NewStaticGeocoder(curitibaTable())

	if _, err := SolveRoute(context.Background(), SolveRouteRequest{}, curitibaRepo(), gc); err == nil {
		t.Fatal("expected error for missing time limit")
	}

	if _, err := SolveRoute(context.Background(), SolveRouteRequest{
		TimeLimit: time.Second,
	}, &fakeRepo{err: errors.New("db down")}, gc); err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}

	if _, err := SolveRoute(context.Background(), SolveRouteRequest{
		TimeLimit: time.Second,
	}, &fakeRepo{}, gc); err == nil {
		t.Fatal("expected error for empty neighborhood set")
	}

	if _, err := SolveRoute(context.Background(), SolveRouteRequest{
		Start:     "Atlantis",
		TimeLimit: time.Second,
	}, curitibaRepo(), gc); err == nil {
		t.Fatal("expected error for unknown start neighborhood")
	}

	if _, err := SolveRoute(context.Background(), SolveRouteRequest{
		TimeLimit: time.Second,
	}, curitibaRepo(), geocode.NewStaticGeocoder(nil)); err == nil {
		t.Fatal("expected error when geocoding fails")
	}
}
