package services

import (
	"context"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/ports"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RunMatchRequest struct {
	Source domain.CoordinateSet
	// Target is used as-is unless TargetSet names a stored reference set.
	Target    domain.CoordinateSet
	TargetSet string
}

// MatchRunner coordinates a full match run:
//   - Resolving the target set (inline or from the reference repository)
//   - Pairing through the Matcher
//   - Persisting, caching and publishing the run
//
// Runs, Cache and Publisher are optional. Persistence failures fail the run;
// cache and publish failures are logged and the run is still returned.
type MatchRunner struct {
	Matcher    Matcher
	References ports.ReferenceRepository
	Runs       ports.MatchRepository
	Cache      ports.ResultCache
	Publisher  ports.ResultPublisher

	NewID func() string
	Now   func() time.Time
}

func (m *MatchRunner) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

func (m *MatchRunner) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

func (m *MatchRunner) Run(ctx context.Context, req RunMatchRequest) (domain.MatchRun, error) {
	target := req.Target

	if set := strings.TrimSpace(req.TargetSet); set != "" {
		if m.References == nil {
			return domain.MatchRun{}, fmt.Errorf("run match: target set %q requested but no reference repository configured", set)
		}

		points, err := m.References.ListReferencePoints(ctx, set)
		if err != nil {
			return domain.MatchRun{}, fmt.Errorf("run match: list reference points %q: %w", set, err)
		}
		target = points
	}

	results, err := m.Matcher.Match(ctx, req.Source, target)
	if err != nil {
		return domain.MatchRun{}, fmt.Errorf("run match: %w", err)
	}

	run := domain.MatchRun{
		ID:        m.newID(),
		CreatedAt: m.now(),
		Results:   results,
	}

	if m.Runs != nil {
		if err := m.Runs.SaveRun(ctx, run); err != nil {
			return domain.MatchRun{}, fmt.Errorf("run match: save run %s: %w", run.ID, err)
		}
	}

	if m.Cache != nil {
		if err := m.Cache.Put(ctx, run); err != nil {
			log.Printf("run_id=%s result cache write failed: %v", run.ID, err)
		}
	}

	if m.Publisher != nil {
		if err := m.Publisher.Publish(ctx, run); err != nil {
			log.Printf("run_id=%s publish results failed: %v", run.ID, err)
		}
	}

	return run, nil
}

// GetRun looks the run up in the cache first, then in the repository.
// It returns ports.ErrRunNotFound when neither knows the id.
func (m *MatchRunner) GetRun(ctx context.Context, runID string) (domain.MatchRun, error) {
	if strings.TrimSpace(runID) == "" {
		return domain.MatchRun{}, errors.New("get run: run id must be non-empty")
	}

	if m.Cache != nil {
		run, found, err := m.Cache.Get(ctx, runID)
		if err != nil {
			log.Printf("run_id=%s result cache read failed: %v", runID, err)
		} else if found {
			return run, nil
		}
	}

	if m.Runs == nil {
		return domain.MatchRun{}, ports.ErrRunNotFound
	}

	run, err := m.Runs.GetRun(ctx, runID)
	if err != nil {
		return domain.MatchRun{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	if m.Cache != nil {
		if err := m.Cache.Put(ctx, run); err != nil {
			log.Printf("run_id=%s result cache write failed: %v", runID, err)
		}
	}

	return run, nil
}
