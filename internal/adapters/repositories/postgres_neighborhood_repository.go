package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the NeighborhoodRepository port.
type PostgresNeighborhoodRepository struct{ DB *sql.DB }

func NewPostgresNeighborhoodRepository(db *sql.DB) *PostgresNeighborhoodRepository {
	return &PostgresNeighborhoodRepository{DB: db}
}

// Return neighborhoods ordered by record count descending, name ascending
// as a stable tie-break. A limit <= 0 returns every row.
func (p *PostgresNeighborhoodRepository) ListNeighborhoods(
	ctx context.Context,
	limit int,
) (_ []*domain.Neighborhood, err error) {
	defer obs.Time(ctx, "repo.ListNeighborhoods")(&err)

	if p.DB == nil {
		return nil, errors.New("neighborhood repository: DB is nil")
	}

	query := `
	SELECT
		code,
		name,
		record_count
	FROM neighborhoods
	ORDER BY record_count DESC, name;
	`
	args := []any{}
	if limit > 0 {
		query = `
	SELECT
		code,
		name,
		record_count
	FROM neighborhoods
	ORDER BY record_count DESC, name
	LIMIT $1;
	`
		args = append(args, limit)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: query neighborhoods table: %w", err)
	}
	defer rows.Close()

	hoods := make([]*domain.Neighborhood, 0, 64)
	for rows.Next() {
		var code, count int
		var name string
		if err := rows.Scan(&code, &name, &count); err != nil {
			return nil, fmt.Errorf("list neighborhoods: scan row: %w", err)
		}
		hoods = append(hoods, &domain.Neighborhood{Code: code, Name: name, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list neighborhoods: row iteration: %w", err)
	}

	return hoods, nil
}
