package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const runKeyPrefix = "geomatch:run:"

// DefaultResultTTL bounds how long a computed run stays in Redis.
const DefaultResultTTL = 15 * time.Minute

// RedisResultCache is a Redis-backed cache of complete match runs, stored as JSON.
type RedisResultCache struct {
	Client redis.Cmdable
	TTL    time.Duration
}

func NewRedisResultCache(client redis.Cmdable, ttl time.Duration) *RedisResultCache {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &RedisResultCache{Client: client, TTL: ttl}
}

func runKey(runID string) string { return runKeyPrefix + runID }

// Fetch a cached run. A miss returns ok=false with a nil error.
func (c *RedisResultCache) Get(ctx context.Context, runID string) (_ domain.MatchRun, _ bool, err error) {
	defer obs.Time(ctx, "runs.cache.Get")(&err)

	if c.Client == nil {
		return domain.MatchRun{}, false, errors.New("result cache: client is nil")
	}

	if strings.TrimSpace(runID) == "" {
		return domain.MatchRun{}, false, errors.New("get result cache: run id must not be empty")
	}

	raw, err := c.Client.Get(ctx, runKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.MatchRun{}, false, nil
	}
	if err != nil {
		return domain.MatchRun{}, false, fmt.Errorf("get result cache: redis get %s: %w", runID, err)
	}

	var run domain.MatchRun
	if err := json.Unmarshal(raw, &run); err != nil {
		return domain.MatchRun{}, false, fmt.Errorf("get result cache: decode %s: %w", runID, err)
	}

	return run, true, nil
}

// Store a run under its id, replacing any previous entry and resetting the TTL.
func (c *RedisResultCache) Put(ctx context.Context, run domain.MatchRun) (err error) {
	defer obs.Time(ctx, "runs.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("result cache: client is nil")
	}

	if strings.TrimSpace(run.ID) == "" {
		return errors.New("put result cache: run id must not be empty")
	}

	raw, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("put result cache: encode %s: %w", run.ID, err)
	}

	if err := c.Client.Set(ctx, runKey(run.ID), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put result cache: redis set %s: %w", run.ID, err)
	}

	return nil
}
