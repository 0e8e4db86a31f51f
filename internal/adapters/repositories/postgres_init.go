package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"neighborhood-route-service/internal/dataset"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createNeighborhoodsQuery := `
	CREATE TABLE IF NOT EXISTS neighborhoods (
		code BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		record_count INTEGER NOT NULL
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		name TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_neighborhoods_record_count
	ON neighborhoods(record_count DESC, name);
	`

	statements := []string{
		createNeighborhoodsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the neighborhoods table from a municipal address CSV export.
// Rows are aggregated per neighborhood before insert, so reseeding from the
// same file is idempotent.
func SeedFromCSV(db *sql.DB, csvPath string, ufFilter string) error {
	if db == nil {
		return errors.New("seed neighborhoods: DB is nil")
	}

	records, err := dataset.LoadRecords(csvPath, ufFilter)
	if err != nil {
		return fmt.Errorf("seed neighborhoods: %w", err)
	}

	hoods := dataset.Aggregate(records)
	if len(hoods) == 0 {
		return fmt.Errorf("seed neighborhoods: no usable rows in %q", csvPath)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed neighborhoods: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO neighborhoods (
		code,
		name,
		record_count
	)
	VALUES ($1, $2, $3)
	ON CONFLICT (code) DO UPDATE SET
		name = EXCLUDED.name,
		record_count = EXCLUDED.record_count;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed neighborhoods: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range hoods {
		if _, err := stmt.Exec(h.Code, h.Name, h.Count); err != nil {
			return fmt.Errorf("seed neighborhoods: insert code=%d: %w", h.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed neighborhoods: commit tx: %w", err)
	}

	return nil
}
