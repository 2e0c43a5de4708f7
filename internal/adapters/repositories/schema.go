package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/geo"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createReferencePointsQuery := `
	CREATE TABLE IF NOT EXISTS reference_points (
		set_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lon DOUBLE PRECISION NOT NULL CHECK (lon BETWEEN -180 AND 180),
		PRIMARY KEY (set_name, position)
	);
	`

	createMatchRunsQuery := `
	CREATE TABLE IF NOT EXISTS match_runs (
		run_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createMatchResultsQuery := `
	CREATE TABLE IF NOT EXISTS match_results (
		run_id TEXT NOT NULL REFERENCES match_runs (run_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		source_lat DOUBLE PRECISION NOT NULL,
		source_lon DOUBLE PRECISION NOT NULL,
		matched_lat DOUBLE PRECISION,
		matched_lon DOUBLE PRECISION,
		distance_km DOUBLE PRECISION,
		PRIMARY KEY (run_id, position),
		CHECK ((matched_lat IS NULL) = (distance_km IS NULL))
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_match_runs_created_at
	ON match_runs (created_at);
	`

	statements := []string{
		createReferencePointsQuery,
		createMatchRunsQuery,
		createMatchResultsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// ReferenceSetSeed is one named set in the seed file. Points accept numbers
// or directional strings, e.g. {"lat": "40.7128 N", "lon": -74.006}.
type ReferenceSetSeed struct {
	Set    string         `json:"set"`
	Points []geo.RawPoint `json:"points"`
}

// ReferenceSet is a validated seed entry.
type ReferenceSet struct {
	Name   string
	Points domain.CoordinateSet
}

// ReadReferenceSeed loads and validates a JSON seed file without touching the database.
func ReadReferenceSeed(jsonPath string) ([]ReferenceSet, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed reference points: read %q: %w", jsonPath, err)
	}

	var data []ReferenceSetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed reference points: parse json: %w", err)
	}

	sets := make([]ReferenceSet, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Set)
		if name == "" {
			return nil, fmt.Errorf("seed reference points: item at index %d: set name cannot be empty", i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("seed reference points: duplicate set %q", name)
		}
		seen[name] = struct{}{}

		points, err := geo.Coordinates(item.Points)
		if err != nil {
			return nil, fmt.Errorf("seed reference points: set %q: %w", name, err)
		}
		sets = append(sets, ReferenceSet{Name: name, Points: points})
	}

	return sets, nil
}

// Populate the database with reference sets from a JSON file.
// Each set in the file replaces any stored set with the same name.
func SeedReferencePoints(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed reference points: DB is nil")
	}

	sets, err := ReadReferenceSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed reference points: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO reference_points (set_name, position, lat, lon)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed reference points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range sets {
		if _, err := tx.ExecContext(ctx, `DELETE FROM reference_points WHERE set_name = $1;`, s.Name); err != nil {
			return fmt.Errorf("seed reference points: clear set %q: %w", s.Name, err)
		}

		for pos, p := range s.Points {
			if _, err := stmt.ExecContext(ctx, s.Name, pos, p.Lat(), p.Lon()); err != nil {
				return fmt.Errorf("seed reference points: insert set=%q position=%d: %w", s.Name, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed reference points: commit tx: %w", err)
	}

	return nil
}
