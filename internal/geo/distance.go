// Package geo holds the pure geospatial computations: great-circle distance
// and coordinate token parsing. Nothing in this package performs I/O.
package geo

import (
	"geo-match-service/internal/domain"
	"math"
)

// Mean Earth radius used by the spherical approximation.
const EarthRadiusKm = 6371.0

// MaxDistanceKm is the antipodal great-circle distance, π·R.
const MaxDistanceKm = math.Pi * EarthRadiusKm

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// Distance returns the great-circle distance between a and b in kilometers
// using the haversine formula on a sphere of radius EarthRadiusKm.
//
// The result is symmetric, zero for identical points and never exceeds
// MaxDistanceKm.
func Distance(a, b domain.Coordinate) float64 {
	phi1 := toRadians(a.Lat())
	phi2 := toRadians(b.Lat())
	dPhi := toRadians(b.Lat() - a.Lat())
	dLambda := toRadians(b.Lon() - a.Lon())

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	h := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	// Rounding can push h slightly outside [0, 1] for identical or antipodal points.
	h = math.Min(1, math.Max(0, h))
	if math.IsNaN(h) {
		panic("geo: distance computed from a non-finite coordinate")
	}

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}
