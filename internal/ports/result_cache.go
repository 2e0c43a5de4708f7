package ports

import (
	"context"
	"geo-match-service/internal/domain"
)

// Short-lived store for recently computed runs, consulted before the repository.
type ResultCache interface {
	Get(ctx context.Context, runID string) (domain.MatchRun, bool, error)
	Put(ctx context.Context, run domain.MatchRun) error
}
