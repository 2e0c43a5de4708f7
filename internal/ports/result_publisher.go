package ports

import (
	"context"
	"geo-match-service/internal/domain"
)

// Downstream notification of completed runs (e.g., a message broker).
type ResultPublisher interface {
	Publish(ctx context.Context, run domain.MatchRun) error
}
