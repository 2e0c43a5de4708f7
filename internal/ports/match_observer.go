package ports

import "geo-match-service/internal/domain"

// Optional sink notified by the matcher. Implementations must not block for long;
// the matcher calls it synchronously, once per result, in source order.
type MatchObserver interface {
	MatchComputed(index int, result domain.MatchResult)
}
