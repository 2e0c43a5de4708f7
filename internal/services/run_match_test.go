package services

import (
	"context"
	"errors"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReferences map[string]domain.CoordinateSet

func (f fakeReferences) ListReferencePoints(_ context.Context, set string) (domain.CoordinateSet, error) {
	points, ok := f[set]
	if !ok {
		return nil, errors.New("unknown set")
	}
	return points, nil
}

type fakeRuns struct {
	saved   map[string]domain.MatchRun
	saveErr error
}

func (f *fakeRuns) SaveRun(_ context.Context, run domain.MatchRun) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.saved == nil {
		f.saved = map[string]domain.MatchRun{}
	}
	f.saved[run.ID] = run
	return nil
}

func (f *fakeRuns) GetRun(_ context.Context, id string) (domain.MatchRun, error) {
	run, ok := f.saved[id]
	if !ok {
		return domain.MatchRun{}, ports.ErrRunNotFound
	}
	return run, nil
}

type fakeCache struct {
	runs   map[string]domain.MatchRun
	putErr error
	puts   int
}

func (f *fakeCache) Get(_ context.Context, id string) (domain.MatchRun, bool, error) {
	run, ok := f.runs[id]
	return run, ok, nil
}

func (f *fakeCache) Put(_ context.Context, run domain.MatchRun) error {
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	if f.runs == nil {
		f.runs = map[string]domain.MatchRun{}
	}
	f.runs[run.ID] = run
	return nil
}

type fakePublisher struct {
	published []domain.MatchRun
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, run domain.MatchRun) error {
	f.published = append(f.published, run)
	return f.err
}

func fixedRunner() *MatchRunner {
	return &MatchRunner{
		NewID: func() string { return "run-1" },
		Now:   func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func TestMatchRunnerRunInlineTarget(t *testing.T) {
	runs := &fakeRuns{}
	cache := &fakeCache{}
	pub := &fakePublisher{}

	m := fixedRunner()
	m.Runs, m.Cache, m.Publisher = runs, cache, pub

	run, err := m.Run(context.Background(), RunMatchRequest{
		Source: set([2]float64{0, 0}, [2]float64{1, 1}),
		Target: set([2]float64{0, 0.1}, [2]float64{1.1, 1.05}),
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), run.CreatedAt)
	require.Len(t, run.Results, 2)

	assert.Contains(t, runs.saved, "run-1")
	assert.Contains(t, cache.runs, "run-1")
	require.Len(t, pub.published, 1)
	assert.Equal(t, run, pub.published[0])
}

func TestMatchRunnerRunReferenceSet(t *testing.T) {
	m := fixedRunner()
	m.References = fakeReferences{"sites": set([2]float64{50, 50})}

	run, err := m.Run(context.Background(), RunMatchRequest{
		Source:    set([2]float64{49, 49}),
		Target:    set([2]float64{0, 0}),
		TargetSet: "sites",
	})
	require.NoError(t, err)

	matched, ok := run.Results[0].Matched()
	require.True(t, ok)
	assert.Equal(t, domain.MustCoordinate(50, 50), matched)

	_, err = m.Run(context.Background(), RunMatchRequest{TargetSet: "unknown"})
	assert.Error(t, err)

	m.References = nil
	_, err = m.Run(context.Background(), RunMatchRequest{TargetSet: "sites"})
	assert.Error(t, err)
}

func TestMatchRunnerSideEffectFailures(t *testing.T) {
	m := fixedRunner()
	m.Cache = &fakeCache{putErr: errors.New("redis down")}
	m.Publisher = &fakePublisher{err: errors.New("broker down")}

	_, err := m.Run(context.Background(), RunMatchRequest{Source: set([2]float64{1, 1})})
	require.NoError(t, err, "cache and publish failures must not fail the run")

	m.Runs = &fakeRuns{saveErr: errors.New("db down")}
	_, err = m.Run(context.Background(), RunMatchRequest{Source: set([2]float64{1, 1})})
	assert.Error(t, err)
}

func TestMatchRunnerGetRun(t *testing.T) {
	run := domain.MatchRun{ID: "abc", Results: PairSets(set([2]float64{1, 1}), nil)}
	runs := &fakeRuns{saved: map[string]domain.MatchRun{"abc": run}}
	cache := &fakeCache{}

	m := fixedRunner()
	m.Runs, m.Cache = runs, cache

	got, err := m.GetRun(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, run, got)
	assert.Equal(t, 1, cache.puts, "repository hit should warm the cache")

	_, err = m.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrRunNotFound)

	_, err = (&MatchRunner{}).GetRun(context.Background(), "abc")
	assert.ErrorIs(t, err, ports.ErrRunNotFound)

	_, err = m.GetRun(context.Background(), " ")
	assert.Error(t, err)
}
