package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"neighborhood-route-service/internal/domain"
)

type memCache struct {
	m        map[string]domain.Coordinates
	putCalls int
	failPut  bool
}

func newMemCache() *memCache { return &memCache{m: map[string]domain.Coordinates{}} }

func (c *memCache) GetMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error) {
	out := map[string]domain.Coordinates{}
	for _, n := range names {
		if v, ok := c.m[n]; ok {
			out[n] = v
		}
	}
	return out, nil
}

func (c *memCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	c.putCalls++
	if c.failPut {
		return errors.New("put failed")
	}
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

type countingGeocoder struct {
	inner *StaticGeocoder
	calls int
}

func (g *countingGeocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, error) {
	g.calls++
	return g.inner.Geocode(ctx, name)
}

func TestCachedGeocoderServesMissesThenHits(t *testing.T) {
	provider := &countingGeocoder{inner: NewStaticGeocoder(map[string]domain.Coordinates{
		"Curitiba": {Lat: -25.4, Lon: -49.3},
		"Londrina": {Lat: -23.3, Lon: -51.2},
	})}
	cache := newMemCache()

	cg, err := NewCachedGeocoder(cache, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	results, err := cg.GeocodeMany(ctx, []string{"Curitiba", "Londrina", "Curitiba", " Curitiba "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results (one per distinct spelling), got %d", len(results))
	}
	if results[" Curitiba "] != results["Curitiba"] {
		t.Fatal("spelling variants must resolve to the same coordinates")
	}
	if provider.calls != 2 {
		t.Fatalf("provider calls = %d, want 2 (deduplicated)", provider.calls)
	}

	// Second round must be served fully from the cache.
	if _, err := cg.GeocodeMany(ctx, []string{"Curitiba", "Londrina"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("provider calls = %d after warm cache, want 2", provider.calls)
	}
}

func TestCachedGeocoderKeysResultsByGivenNames(t *testing.T) {
	provider := NewStaticGeocoder(map[string]domain.Coordinates{
		"Agua Verde": {Lat: -25.4530, Lon: -49.2860},
	})
	cg, err := NewCachedGeocoder(newMemCache(), provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Doubled internal whitespace is collapsed for the cache and provider,
	// but the caller must be able to look the result up under its own key.
	results, err := cg.GeocodeMany(context.Background(), []string{"Agua  Verde"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := results["Agua  Verde"]; !ok {
		t.Fatalf("result not keyed by the supplied name, got keys %v", results)
	}

	coords, err := cg.Geocode(context.Background(), "Agua  Verde")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Lat != -25.4530 {
		t.Fatalf("lat = %g, want -25.4530", coords.Lat)
	}
}

func TestCachedGeocoderToleratesCacheWriteFailure(t *testing.T) {
	provider := NewStaticGeocoder(map[string]domain.Coordinates{"Curitiba": {Lat: -25.4, Lon: -49.3}})
	cache := newMemCache()
	cache.failPut = true

	cg, err := NewCachedGeocoder(cache, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords, err := cg.Geocode(context.Background(), "Curitiba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Lat != -25.4 {
		t.Fatalf("lat = %g, want -25.4", coords.Lat)
	}
	if cache.putCalls != 1 {
		t.Fatalf("put calls = %d, want 1", cache.putCalls)
	}
}

func TestCachedGeocoderPropagatesProviderError(t *testing.T) {
	provider := NewStaticGeocoder(nil)
	cg, _ := NewCachedGeocoder(newMemCache(), provider)

	if _, err := cg.Geocode(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestFallbackGeocoderUsesSecondProvider(t *testing.T) {
	empty := NewStaticGeocoder(nil)
	good := NewStaticGeocoder(map[string]domain.Coordinates{"Curitiba": {Lat: -25.4, Lon: -49.3}})

	fg, err := NewFallbackGeocoder(empty, good)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords, err := fg.Geocode(context.Background(), "Curitiba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Lon != -49.3 {
		t.Fatalf("lon = %g, want -49.3", coords.Lon)
	}
}

func TestFallbackGeocoderAllFail(t *testing.T) {
	fg, _ := NewFallbackGeocoder(NewStaticGeocoder(nil), NewStaticGeocoder(nil))
	if _, err := fg.Geocode(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error when every provider fails")
	}
}

func TestGoogleGeocoderParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "Curitiba, PR, Brasil" {
			t.Errorf("address = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":-25.4284,"lng":-49.2733}}}]}`))
	}))
	defer srv.Close()

	g, err := NewGoogleGeocoder("test-key", "PR, Brasil", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.baseURL = srv.URL

	coords, err := g.Geocode(context.Background(), "Curitiba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Lat != -25.4284 || coords.Lon != -49.2733 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestGoogleGeocoderZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer srv.Close()

	g, _ := NewGoogleGeocoder("test-key", "", 0)
	g.baseURL = srv.URL

	if _, err := g.Geocode(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error for zero results")
	}
}

func TestNominatimGeocoderParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}
		w.Write([]byte(`[{"lat":"-23.3045","lon":"-51.1696"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, "PR, Brasil")

	coords, err := g.Geocode(context.Background(), "Londrina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Lat != -23.3045 || coords.Lon != -51.1696 {
		t.Fatalf("coords = %+v", coords)
	}
}
