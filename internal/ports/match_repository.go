package ports

import (
	"context"
	"errors"
	"geo-match-service/internal/domain"
)

// ErrRunNotFound is returned by MatchRepository and ResultCache lookups for unknown run ids.
var ErrRunNotFound = errors.New("match run not found")

// Contract for persisting completed match runs.
type MatchRepository interface {
	SaveRun(ctx context.Context, run domain.MatchRun) error
	// Return the run with its results in source order, or ErrRunNotFound.
	GetRun(ctx context.Context, runID string) (domain.MatchRun, error)
}
