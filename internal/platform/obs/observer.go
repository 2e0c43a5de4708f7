package obs

import (
	"geo-match-service/internal/domain"
	"log"
)

// LogObserver writes one log line per computed match.
type LogObserver struct {
	// Prefix is prepended to every line, e.g. a run or request id.
	Prefix string
	Logger *log.Logger
}

func (o LogObserver) MatchComputed(index int, r domain.MatchResult) {
	logf := log.Printf
	if o.Logger != nil {
		logf = o.Logger.Printf
	}

	matched, ok := r.Matched()
	if !ok {
		logf("%smatch index=%d source=%v matched=none", o.Prefix, index, r.Source())
		return
	}
	dist, _ := r.DistanceKm()
	logf("%smatch index=%d source=%v matched=%v distance_km=%.3f", o.Prefix, index, r.Source(), matched, dist)
}
