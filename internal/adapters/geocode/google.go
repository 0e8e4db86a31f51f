package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/platform/obs"
)

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleGeocoder resolves neighborhood names through the Google Geocoding
// JSON API. A region suffix (e.g. "PR, Brasil") is appended to every query
// to keep results inside the service area, and a throttle pause follows each
// call to stay within the provider's rate expectations.
type GoogleGeocoder struct {
	client   httpClient
	apiKey   string
	baseURL  string
	region   string
	throttle time.Duration
}

func NewGoogleGeocoder(apiKey, region string, throttle time.Duration) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google geocoder: api key is empty")
	}

	return &GoogleGeocoder{
		client:   newHTTPClient(),
		apiKey:   apiKey,
		baseURL:  "https://maps.googleapis.com",
		region:   region,
		throttle: throttle,
	}, nil
}

// Resolve a single neighborhood name to coordinates.
func (g *GoogleGeocoder) Geocode(ctx context.Context, name string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.google")(&err)

	query := normalize(name)
	if query == "" {
		return domain.Coordinates{}, errors.New("google geocode: name must be non-empty")
	}
	if g.region != "" {
		query += ", " + g.region
	}

	endpoint := g.baseURL + "/maps/api/geocode/json"
	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		q.Set("address", query)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", name, err)
	}
	defer resp.Body.Close()

	var decoded googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: decode response: %w", name, err)
	}

	g.pause(ctx)

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: no results (status %s)", name, decoded.Status)
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng}, nil
}

func (g *GoogleGeocoder) pause(ctx context.Context) {
	if g.throttle <= 0 {
		return
	}
	timer := time.NewTimer(g.throttle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
