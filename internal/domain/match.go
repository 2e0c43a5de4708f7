package domain

import (
	"encoding/json"
	"time"
)

// Represents the nearest-neighbor match for a single source point.
// When the target set was empty the result carries no match and no distance.
// It is immutable; values are produced once by the matcher.
type MatchResult struct {
	source     Coordinate
	matched    Coordinate
	distanceKm float64
	found      bool
}

func NewMatchResult(source, matched Coordinate, distanceKm float64) MatchResult {
	return MatchResult{source: source, matched: matched, distanceKm: distanceKm, found: true}
}

// NoMatch is the result for a source point matched against an empty set.
func NoMatch(source Coordinate) MatchResult {
	return MatchResult{source: source}
}

func (r MatchResult) Source() Coordinate { return r.source }

func (r MatchResult) Matched() (Coordinate, bool) { return r.matched, r.found }

func (r MatchResult) DistanceKm() (float64, bool) { return r.distanceKm, r.found }

type matchResultJSON struct {
	Source     Coordinate  `json:"source"`
	Matched    *Coordinate `json:"matched"`
	DistanceKm *float64    `json:"distance_km"`
}

func (r MatchResult) MarshalJSON() ([]byte, error) {
	out := matchResultJSON{Source: r.source}
	if r.found {
		m, d := r.matched, r.distanceKm
		out.Matched = &m
		out.DistanceKm = &d
	}
	return json.Marshal(out)
}

func (r *MatchResult) UnmarshalJSON(b []byte) error {
	var raw matchResultJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Matched == nil || raw.DistanceKm == nil {
		*r = NoMatch(raw.Source)
		return nil
	}
	*r = NewMatchResult(raw.Source, *raw.Matched, *raw.DistanceKm)
	return nil
}

// Represents one execution of pairing a source set against a target set.
// Results are in source order.
type MatchRun struct {
	ID        string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Results   []MatchResult `json:"results"`
}
