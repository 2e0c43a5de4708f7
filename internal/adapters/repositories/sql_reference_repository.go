package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/platform/obs"
)

// Postgres-backed implementation of the ReferenceRepository port.
type SQLReferenceRepository struct{ DB *sql.DB }

func NewSQLReferenceRepository(db *sql.DB) *SQLReferenceRepository {
	return &SQLReferenceRepository{DB: db}
}

// Return the points of a reference set in stored order.
// An unknown set yields an empty set, matching an empty target.
func (s *SQLReferenceRepository) ListReferencePoints(
	ctx context.Context,
	set string,
) (_ domain.CoordinateSet, err error) {
	defer obs.Time(ctx, "reference.ListReferencePoints")(&err)

	if s.DB == nil {
		return nil, errors.New("sql reference repository: DB is nil")
	}

	query := `
	SELECT
		lat,
		lon
	FROM reference_points
	WHERE set_name = $1
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query, set)
	if err != nil {
		return nil, fmt.Errorf("list reference points: query reference_points table: %w", err)
	}
	defer rows.Close()

	points := make(domain.CoordinateSet, 0, 64)
	for rows.Next() {
		var lat, lon float64
		if err := rows.Scan(&lat, &lon); err != nil {
			return nil, fmt.Errorf("list reference points: scan row: %w", err)
		}

		c, err := domain.NewCoordinate(lat, lon)
		if err != nil {
			return nil, fmt.Errorf("list reference points: set %q: %w", set, err)
		}
		points = append(points, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reference points: row iteration: %w", err)
	}

	return points, nil
}
