package geo

import (
	"geo-match-service/internal/domain"
	"math/rand"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomCoordinate(r *rand.Rand) domain.Coordinate {
	return domain.MustCoordinate(r.Float64()*180-90, r.Float64()*360-180)
}

func TestDistanceLondonParis(t *testing.T) {
	london := domain.MustCoordinate(51.5074, -0.1278)
	paris := domain.MustCoordinate(48.8566, 2.3522)

	assert.InDelta(t, 343, Distance(london, paris), 5)
}

func TestDistanceProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		a := randomCoordinate(r)
		b := randomCoordinate(r)

		require.InDelta(t, 0, Distance(a, a), 1e-9, "self distance for %v", a)
		require.Equal(t, Distance(a, b), Distance(b, a), "symmetry for %v %v", a, b)

		d := Distance(a, b)
		require.GreaterOrEqual(t, d, 0.0)
		require.LessOrEqual(t, d, MaxDistanceKm)
	}
}

func TestDistanceMatchesS2(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		a := randomCoordinate(r)
		b := randomCoordinate(r)

		angle := s2.LatLngFromDegrees(a.Lat(), a.Lon()).Distance(s2.LatLngFromDegrees(b.Lat(), b.Lon()))
		want := angle.Radians() * EarthRadiusKm

		assert.InDelta(t, want, Distance(a, b), 1e-3, "%v -> %v", a, b)
	}
}

func TestDistanceEdgeCases(t *testing.T) {
	t.Run("antipodal points reach the maximum", func(t *testing.T) {
		d := Distance(domain.MustCoordinate(0, 0), domain.MustCoordinate(0, 180))
		assert.InDelta(t, MaxDistanceKm, d, 1e-6)
		assert.LessOrEqual(t, d, MaxDistanceKm)
	})

	t.Run("poles", func(t *testing.T) {
		d := Distance(domain.MustCoordinate(90, 0), domain.MustCoordinate(-90, 0))
		assert.InDelta(t, MaxDistanceKm, d, 1e-6)
	})

	t.Run("date line neighbours are close", func(t *testing.T) {
		d := Distance(domain.MustCoordinate(0, 179.9), domain.MustCoordinate(0, -179.9))
		assert.InDelta(t, 22.24, d, 0.05)
	})

	t.Run("identical high precision points", func(t *testing.T) {
		p := domain.MustCoordinate(-33.868820, 151.209296)
		assert.Equal(t, 0.0, Distance(p, p))
	})
}
