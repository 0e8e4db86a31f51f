package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/ports"
)

// FallbackGeocoder tries a chain of providers in order and returns the first
// successful resolution. Provider failures short of the last are logged and
// swallowed.
type FallbackGeocoder struct {
	providers []ports.Geocoder
}

func NewFallbackGeocoder(providers ...ports.Geocoder) (*FallbackGeocoder, error) {
	if len(providers) == 0 {
		return nil, errors.New("fallback geocoder: at least one provider is required")
	}
	return &FallbackGeocoder{providers: providers}, nil
}

func (f *FallbackGeocoder) Geocode(ctx context.Context, name string) (domain.Coordinates, error) {
	var errs []error
	for i, p := range f.providers {
		coords, err := p.Geocode(ctx, name)
		if err == nil {
			return coords, nil
		}
		errs = append(errs, err)
		if i < len(f.providers)-1 {
			log.Warn().Err(err).Str("name", name).Int("provider", i).Msg("geocode provider failed, trying next")
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Coordinates{}, ctxErr
		}
	}

	return domain.Coordinates{}, fmt.Errorf("geocode %q: all providers failed: %w", name, errors.Join(errs...))
}
