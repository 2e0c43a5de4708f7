package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/platform/obs"
	"geo-match-service/internal/ports"
	"strings"
	"time"
)

// SQLMatchRepository persists match runs and their ordered results in Postgres.
type SQLMatchRepository struct {
	DB *sql.DB
}

func NewSQLMatchRepository(db *sql.DB) *SQLMatchRepository {
	return &SQLMatchRepository{DB: db}
}

// Store a run and all of its results in one transaction.
func (s *SQLMatchRepository) SaveRun(ctx context.Context, run domain.MatchRun) (err error) {
	defer obs.Time(ctx, "runs.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("match repository: db is nil")
	}

	if strings.TrimSpace(run.ID) == "" {
		return errors.New("insert match run: run id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert match run: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO match_runs (run_id, created_at)
	VALUES ($1, $2);
	`, run.ID, run.CreatedAt); err != nil {
		return fmt.Errorf("insert match run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO match_results (
		run_id, position, source_lat, source_lon, matched_lat, matched_lon, distance_km
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`)
	if err != nil {
		return fmt.Errorf("insert match results: db prepare: %w", err)
	}
	defer stmt.Close()

	for pos, r := range run.Results {
		var matchedLat, matchedLon, dist sql.NullFloat64
		if m, ok := r.Matched(); ok {
			d, _ := r.DistanceKm()
			matchedLat = sql.NullFloat64{Float64: m.Lat(), Valid: true}
			matchedLon = sql.NullFloat64{Float64: m.Lon(), Valid: true}
			dist = sql.NullFloat64{Float64: d, Valid: true}
		}

		src := r.Source()
		if _, err := stmt.ExecContext(ctx, run.ID, pos, src.Lat(), src.Lon(), matchedLat, matchedLon, dist); err != nil {
			return fmt.Errorf("insert match result run=%s position=%d: %w", run.ID, pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert match run commit: %w", err)
	}

	return nil
}

// Fetch a run and its results ordered by source position.
func (s *SQLMatchRepository) GetRun(ctx context.Context, runID string) (_ domain.MatchRun, err error) {
	defer obs.Time(ctx, "runs.GetRun")(&err)

	if s.DB == nil {
		return domain.MatchRun{}, errors.New("match repository: db is nil")
	}

	var createdAt time.Time
	err = s.DB.QueryRowContext(ctx, `
	SELECT created_at
	FROM match_runs
	WHERE run_id = $1;
	`, runID).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MatchRun{}, ports.ErrRunNotFound
	}
	if err != nil {
		return domain.MatchRun{}, fmt.Errorf("get match run: query match_runs table: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT source_lat, source_lon, matched_lat, matched_lon, distance_km
	FROM match_results
	WHERE run_id = $1
	ORDER BY position;
	`, runID)
	if err != nil {
		return domain.MatchRun{}, fmt.Errorf("get match run: query match_results table: %w", err)
	}
	defer rows.Close()

	results := make([]domain.MatchResult, 0, 64)
	for rows.Next() {
		var srcLat, srcLon float64
		var matchedLat, matchedLon, dist sql.NullFloat64
		if err := rows.Scan(&srcLat, &srcLon, &matchedLat, &matchedLon, &dist); err != nil {
			return domain.MatchRun{}, fmt.Errorf("get match run: scan rows: %w", err)
		}

		r, err := scanResult(srcLat, srcLon, matchedLat, matchedLon, dist)
		if err != nil {
			return domain.MatchRun{}, fmt.Errorf("get match run %s: %w", runID, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return domain.MatchRun{}, fmt.Errorf("get match run: row iteration: %w", err)
	}

	return domain.MatchRun{ID: runID, CreatedAt: createdAt.UTC(), Results: results}, nil
}

func scanResult(srcLat, srcLon float64, matchedLat, matchedLon, dist sql.NullFloat64) (domain.MatchResult, error) {
	src, err := domain.NewCoordinate(srcLat, srcLon)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("source: %w", err)
	}

	if !matchedLat.Valid || !matchedLon.Valid || !dist.Valid {
		return domain.NoMatch(src), nil
	}

	m, err := domain.NewCoordinate(matchedLat.Float64, matchedLon.Float64)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("matched: %w", err)
	}
	return domain.NewMatchResult(src, m, dist.Float64), nil
}
