package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"neighborhood-route-service/internal/domain"
)

func newTestRedisCache(t *testing.T) *RedisGeocodeCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGeocodeCache(client)
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	put := map[string]domain.Coordinates{
		"Curitiba": {Lat: -25.4284, Lon: -49.2733},
		"Londrina": {Lat: -23.3045, Lon: -51.1696},
	}
	if err := c.PutMany(ctx, put); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Curitiba", "Londrina", "Maringa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got["Curitiba"] != put["Curitiba"] {
		t.Fatalf("Curitiba = %+v, want %+v", got["Curitiba"], put["Curitiba"])
	}
	if _, ok := got["Maringa"]; ok {
		t.Fatal("absent key must be missing from result, not present")
	}
}

func TestRedisGeocodeCacheUpsert(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Curitiba": {Lat: 1, Lon: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Curitiba": {Lat: -25.4, Lon: -49.3}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Curitiba"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["Curitiba"].Lat != -25.4 {
		t.Fatalf("lat = %g, want -25.4 (latest write wins)", got["Curitiba"].Lat)
	}
}

func TestRedisGeocodeCacheBlankInputs(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	got, err := c.GetMany(ctx, []string{"", "  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %d", len(got))
	}

	if err := c.PutMany(ctx, map[string]domain.Coordinates{" ": {}}); err == nil {
		t.Fatal("expected error for empty name key")
	}
}
