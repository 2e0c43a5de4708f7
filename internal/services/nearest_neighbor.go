package services

import (
	"geo-match-service/internal/domain"
	"geo-match-service/internal/geo"
)

// FindClosest returns the candidate nearest to reference by great-circle distance.
//
// Candidates are scanned in order with a strict less-than comparison, so when
// two candidates are equidistant the first one listed wins. ok is false when
// candidates is empty; that is not an error.
func FindClosest(
	reference domain.Coordinate,
	candidates domain.CoordinateSet,
) (closest domain.Coordinate, distanceKm float64, ok bool) {
	for _, c := range candidates {
		d := geo.Distance(reference, c)
		if !ok || d < distanceKm {
			closest, distanceKm, ok = c, d, true
		}
	}
	return closest, distanceKm, ok
}

func matchOne(source domain.Coordinate, target domain.CoordinateSet) domain.MatchResult {
	closest, dist, ok := FindClosest(source, target)
	if !ok {
		return domain.NoMatch(source)
	}
	return domain.NewMatchResult(source, closest, dist)
}

// PairSets matches every source point to its nearest target point.
//
// The result has exactly one entry per source point, in source order.
// Neither input is modified. Cost is len(source)*len(target) distance evaluations.
func PairSets(source, target domain.CoordinateSet) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(source))
	for _, s := range source {
		results = append(results, matchOne(s, target))
	}
	return results
}
