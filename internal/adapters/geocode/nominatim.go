package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/platform/obs"
)

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimGeocoder resolves names through the OSM Nominatim search API.
// It needs no API key and serves as the fallback provider when the primary
// geocoder is unavailable or unconfigured.
type NominatimGeocoder struct {
	client    httpClient
	baseURL   string
	userAgent string
	region    string
}

func NewNominatimGeocoder(baseURL, region string) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:    newHTTPClient(),
		baseURL:   baseURL,
		userAgent: "neighborhood-route-service/1.0",
		region:    region,
	}
}

// Resolve a single neighborhood name to coordinates.
func (g *NominatimGeocoder) Geocode(ctx context.Context, name string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.nominatim")(&err)

	query := normalize(name)
	if query == "" {
		return domain.Coordinates{}, errors.New("nominatim geocode: name must be non-empty")
	}
	if g.region != "" {
		query += ", " + g.region
	}

	endpoint := g.baseURL + "/search"
	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", g.userAgent)
		q := req.URL.Query()
		q.Set("q", query)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", name, err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: decode response: %w", name, err)
	}
	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: no results", name)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: parse lat %q: %w", name, decoded[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: parse lon %q: %w", name, decoded[0].Lon, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
