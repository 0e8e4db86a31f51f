package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/platform/metrics"
	"neighborhood-route-service/internal/platform/obs"
	"neighborhood-route-service/internal/ports"
)

// CachedGeocoder fronts a Geocoder with a persistent cache. Lookups are
// deduplicated and served cache-first; only misses reach the underlying
// provider, and fresh resolutions are written back. A cache write failure is
// logged but does not fail the lookup.
type CachedGeocoder struct {
	cache ports.GeocodeCache
	next  ports.Geocoder
}

func NewCachedGeocoder(cache ports.GeocodeCache, next ports.Geocoder) (*CachedGeocoder, error) {
	if next == nil {
		return nil, errors.New("cached geocoder: provider is nil")
	}
	return &CachedGeocoder{cache: cache, next: next}, nil
}

func (c *CachedGeocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, error) {
	results, err := c.GeocodeMany(ctx, []string{name})
	if err != nil {
		return domain.Coordinates{}, err
	}
	coords, ok := results[name]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: no result", name)
	}
	return coords, nil
}

// Resolve many names, cache-first. Cache and provider see whitespace-
// normalized names so spelling variants share one entry, but the returned
// map is keyed by the names exactly as the caller gave them.
func (c *CachedGeocoder) GeocodeMany(ctx context.Context, names []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cached.GeocodeMany")(&err)

	seen := make(map[string]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = normalize(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	hits := make(map[string]domain.Coordinates)
	if c.cache != nil {
		hits, err = c.cache.GetMany(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}
	}
	metrics.GeocodeCacheHits.Add(float64(len(hits)))

	fresh := make(map[string]domain.Coordinates)
	for _, n := range uniq {
		if _, ok := hits[n]; ok {
			continue
		}
		metrics.GeocodeCacheMisses.Inc()

		coords, gerr := c.next.Geocode(ctx, n)
		if gerr != nil {
			return nil, fmt.Errorf("geocode %q: %w", n, gerr)
		}
		fresh[n] = coords
	}

	if c.cache != nil && len(fresh) > 0 {
		if werr := c.cache.PutMany(ctx, fresh); werr != nil {
			log.Warn().Err(werr).Msg("geocode cache write failed")
		}
	}

	resolved := make(map[string]domain.Coordinates, len(hits)+len(fresh))
	for k, v := range hits {
		resolved[k] = v
	}
	for k, v := range fresh {
		resolved[k] = v
	}

	// Re-key by the caller's original spellings.
	out := make(map[string]domain.Coordinates, len(names))
	for _, n := range names {
		if coords, ok := resolved[normalize(n)]; ok {
			out[n] = coords
		}
	}

	return out, nil
}
