package services

import (
	"context"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// PairSetsConcurrent is PairSets with source points evaluated on up to
// workers goroutines. Each task writes only its own slot of the result slice,
// so the output is identical to PairSets. workers <= 1 runs sequentially.
func PairSetsConcurrent(
	ctx context.Context,
	source domain.CoordinateSet,
	target domain.CoordinateSet,
	workers int,
) ([]domain.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pair sets: %w", err)
	}

	if workers <= 1 || len(source) < 2 {
		return PairSets(source, target), nil
	}

	results := make([]domain.MatchResult, len(source))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, src := range source {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = matchOne(src, target)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("pair sets: %w", err)
	}
	// Dispatch may have stopped early on cancellation without any task failing.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pair sets: %w", err)
	}

	return results, nil
}

// Matcher is the entry point hosts use to pair sets.
// The zero value pairs sequentially and reports to nobody.
type Matcher struct {
	Workers  int
	Observer ports.MatchObserver
}

// Match pairs source against target and notifies the observer, if any,
// once per result in source order.
func (m Matcher) Match(
	ctx context.Context,
	source domain.CoordinateSet,
	target domain.CoordinateSet,
) ([]domain.MatchResult, error) {
	results, err := PairSetsConcurrent(ctx, source, target, m.Workers)
	if err != nil {
		return nil, err
	}

	if m.Observer != nil {
		for i, r := range results {
			m.Observer.MatchComputed(i, r)
		}
	}

	return results, nil
}
