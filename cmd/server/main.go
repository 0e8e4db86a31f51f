package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"neighborhood-route-service/internal/adapters/cache"
	"neighborhood-route-service/internal/adapters/geocode"
	"neighborhood-route-service/internal/adapters/repositories"
	"neighborhood-route-service/internal/api"
	"neighborhood-route-service/internal/config"
	"neighborhood-route-service/internal/platform/db"
	"neighborhood-route-service/internal/platform/logging"
	"neighborhood-route-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, geocoding providers) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Pretty)

	pool, err := db.Open(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	// Initialize schema and seed the neighborhood table on startup so local
	// runs work from a fresh database.
	if err := repositories.InitSchema(pool); err != nil {
		logger.Fatal().Err(err).Msg("init schema")
	}
	if _, err := os.Stat(cfg.Dataset.CSVPath); err == nil {
		if err := repositories.SeedFromCSV(pool, cfg.Dataset.CSVPath, cfg.Dataset.UFFilter); err != nil {
			logger.Fatal().Err(err).Msg("seed neighborhoods")
		}
	} else {
		logger.Warn().Str("path", cfg.Dataset.CSVPath).Msg("dataset CSV not found, skipping seed")
	}

	geocodeCache, err := buildGeocodeCache(cfg, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("build geocode cache")
	}

	provider, err := buildGeocoder(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("build geocoder")
	}
	geocoder, err := geocode.NewCachedGeocoder(geocodeCache, provider)
	if err != nil {
		logger.Fatal().Err(err).Msg("build cached geocoder")
	}

	repo := repositories.NewPostgresNeighborhoodRepository(pool)
	router := api.NewRouter(repo, geocoder, api.RouterOptions{
		DefaultTimeLimit: time.Duration(cfg.Solver.DefaultTimeLimitSeconds * float64(time.Second)),
		DefaultLimit:     cfg.Solver.MaxNeighborhoods,
	})

	// The write timeout covers worst-case solves plus cold-cache geocoding.
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	logger.Info().Str("addr", cfg.Server.Addr).Msg("server listening")
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

// Select the geocode cache backend. Postgres shares the service database;
// Redis suits deployments where several instances share one cache.
func buildGeocodeCache(cfg config.Config, pool *sql.DB) (ports.GeocodeCache, error) {
	switch strings.ToLower(cfg.Cache.Backend) {
	case "postgres", "":
		return cache.NewSQLGeocodeCache(pool), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		return cache.NewRedisGeocodeCache(client), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Chain the configured geocoding providers, preferring Google when an API
// key is present and falling back to Nominatim.
func buildGeocoder(cfg config.Config) (ports.Geocoder, error) {
	providers := make([]ports.Geocoder, 0, 2)

	if strings.TrimSpace(cfg.Geocoding.GoogleAPIKey) != "" {
		g, err := geocode.NewGoogleGeocoder(
			cfg.Geocoding.GoogleAPIKey,
			cfg.Geocoding.Region,
			time.Duration(cfg.Geocoding.ThrottleSeconds*float64(time.Second)),
		)
		if err != nil {
			return nil, err
		}
		providers = append(providers, g)
	}

	providers = append(providers, geocode.NewNominatimGeocoder(
		cfg.Geocoding.NominatimBaseURL,
		cfg.Geocoding.Region,
	))

	return geocode.NewFallbackGeocoder(providers...)
}
