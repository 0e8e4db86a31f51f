package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"neighborhood-route-service/internal/adapters/repositories"
	"neighborhood-route-service/internal/config"
	"neighborhood-route-service/internal/platform/db"
	"neighborhood-route-service/internal/platform/logging"
)

// dbtool initializes the database schema and seeds the neighborhoods table
// from a CSV export, without starting the HTTP server.
func main() {
	var (
		csvPath  = flag.String("csv", "", "dataset CSV path (default from config)")
		ufFilter = flag.String("uf", "", "keep only rows for this UF (default from config)")
		seedOnly = flag.Bool("seed-only", false, "skip schema initialization")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging.Level, true)

	if *csvPath == "" {
		*csvPath = cfg.Dataset.CSVPath
	}
	if *ufFilter == "" {
		*ufFilter = cfg.Dataset.UFFilter
	}

	pool, err := db.Open(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	if !*seedOnly {
		logger.Info().Msg("initializing schema")
		if err := repositories.InitSchema(pool); err != nil {
			logger.Fatal().Err(err).Msg("schema initialization failed")
		}
		logger.Info().Msg("schema ready")
	}

	logger.Info().Str("csv", *csvPath).Str("uf", *ufFilter).Msg("seeding neighborhoods")
	if err := repositories.SeedFromCSV(pool, *csvPath, *ufFilter); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	logger.Info().Msg("seeding complete")
}
