package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/platform/obs"
)

// redisKeyPrefix namespaces cache entries so the store can be shared.
const redisKeyPrefix = "geocode:"

// RedisGeocodeCache stores name -> coordinates pairs in Redis as "lat,lon"
// strings. Entries never expire; geocoded coordinates do not go stale.
type RedisGeocodeCache struct {
	client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client}
}

// Fetch cached coordinates for the given names with a single MGET.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	names []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if r.client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
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

	keys := make([]string, len(uniq))
	for i, n := range uniq {
		keys[i] = redisKeyPrefix + n
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // absent key
		}
		coords, err := decodeCoords(s)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: key %q: %w", keys[i], err)
		}
		out[uniq[i]] = coords
	}

	return out, nil
}

// Store name -> coordinate mappings with a single pipelined write.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for name, c := range results {
		if strings.TrimSpace(name) == "" {
			return errors.New("insert geocode cache: empty name key")
		}
		pipe.Set(ctx, redisKeyPrefix+name, encodeCoords(c), 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}

func encodeCoords(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func decodeCoords(s string) (domain.Coordinates, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed cache value %q", s)
	}

	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed latitude in %q: %w", s, err)
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed longitude in %q: %w", s, err)
	}

	return domain.Coordinates{Lat: latF, Lon: lonF}, nil
}
