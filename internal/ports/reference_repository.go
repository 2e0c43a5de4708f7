package ports

import (
	"context"
	"geo-match-service/internal/domain"
)

// Port: a boundary for retrieving named reference sets (e.g., sensor sites).
type ReferenceRepository interface {
	// Retrieve the points of a reference set in their stored order.
	ListReferencePoints(ctx context.Context, set string) (domain.CoordinateSet, error)
}
