package prompt

import (
	"geo-match-service/internal/domain"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *strings.Builder) {
	out := &strings.Builder{}
	return New(strings.NewReader(input), out), out
}

func TestReadFloatRetriesUntilValid(t *testing.T) {
	p, out := newPrompter("abc\nNaN\n100\n45.5\n")

	v, err := p.ReadFloat("lat? ", -90, 90)
	require.NoError(t, err)
	assert.Equal(t, 45.5, v)

	assert.Contains(t, out.String(), "'abc' is not a valid number")
	assert.Contains(t, out.String(), "'NaN' is not a valid number")
	assert.Contains(t, out.String(), "value 100 out of range")
	assert.Equal(t, 4, strings.Count(out.String(), "lat? "))
}

func TestReadFloatBoundsAreInclusive(t *testing.T) {
	p, _ := newPrompter("90\n-90\n")

	v, err := p.ReadFloat("", -90, 90)
	require.NoError(t, err)
	assert.Equal(t, 90.0, v)

	v, err = p.ReadFloat("", -90, 90)
	require.NoError(t, err)
	assert.Equal(t, -90.0, v)
}

func TestReadFloatEOF(t *testing.T) {
	p, _ := newPrompter("nope\n")

	_, err := p.ReadFloat("", 0, 1)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadDMS(t *testing.T) {
	t.Run("positive", func(t *testing.T) {
		p, _ := newPrompter("40\n42\n46\n")
		v, err := p.ReadDMS(domain.Latitude)
		require.NoError(t, err)
		assert.InDelta(t, 40.712777, v, 1e-6)
	})

	t.Run("negative degrees apply to the whole angle", func(t *testing.T) {
		p, _ := newPrompter("-74\n0\n21.6\n")
		v, err := p.ReadDMS(domain.Longitude)
		require.NoError(t, err)
		assert.InDelta(t, -74.006, v, 1e-9)
	})

	t.Run("negative zero degrees", func(t *testing.T) {
		p, _ := newPrompter("-0\n30\n0\n")
		v, err := p.ReadDMS(domain.Latitude)
		require.NoError(t, err)
		assert.InDelta(t, -0.5, v, 1e-12)
	})

	t.Run("minutes must be below 60", func(t *testing.T) {
		p, out := newPrompter("10\n60\n59\n0\n")
		v, err := p.ReadDMS(domain.Latitude)
		require.NoError(t, err)
		assert.InDelta(t, 10+59.0/60, v, 1e-12)
		assert.Contains(t, out.String(), "must be at least 0 and below 60")
	})

	t.Run("combined angle out of range is asked again", func(t *testing.T) {
		p, out := newPrompter("90\n30\n0\n89\n30\n0\n")
		v, err := p.ReadDMS(domain.Latitude)
		require.NoError(t, err)
		assert.InDelta(t, 89.5, v, 1e-12)
		assert.Contains(t, out.String(), "Please enter the angle again")
	})
}

func TestReadAxis(t *testing.T) {
	p, out := newPrompter("x\nD\n-33.8688\ndm\n151\n12\n36\n")

	lat, err := p.ReadAxis(domain.Latitude)
	require.NoError(t, err)
	assert.Equal(t, -33.8688, lat)
	assert.Contains(t, out.String(), "Invalid choice. Type 'd' or 'dm'.")

	lon, err := p.ReadAxis(domain.Longitude)
	require.NoError(t, err)
	assert.InDelta(t, 151.21, lon, 1e-9)
}

func TestReadSet(t *testing.T) {
	input := strings.Join([]string{
		"0", "two", "2",
		"d", "51.5074", "d", "-0.1278",
		"d", "48.8566", "d", "2.3522",
	}, "\n") + "\n"
	p, out := newPrompter(input)

	set, err := p.ReadSet("FIRST")
	require.NoError(t, err)
	assert.Equal(t, domain.CoordinateSet{
		domain.MustCoordinate(51.5074, -0.1278),
		domain.MustCoordinate(48.8566, 2.3522),
	}, set)

	assert.Contains(t, out.String(), "How many geo locations are in your FIRST array? ")
	assert.Contains(t, out.String(), "FIRST array: Enter coordinates for point #2.")
	assert.Equal(t, 2, strings.Count(out.String(), "not a whole number"))
}

func TestReadCountRejectsOversizedCounts(t *testing.T) {
	p, out := newPrompter("9000000000000000000\n99999999999999999999\n10001\n10000\n")

	n, err := p.ReadCount("count? ")
	require.NoError(t, err)
	assert.Equal(t, MaxCount, n)
	assert.Equal(t, 2, strings.Count(out.String(), "too many points"))
	assert.Contains(t, out.String(), "'99999999999999999999' is not a whole number")
}

func TestReadSetHugeCountReprompts(t *testing.T) {
	p, out := newPrompter("9000000000000000000\n1\nd\n1\nd\n2\n")

	set, err := p.ReadSet("FIRST")
	require.NoError(t, err)
	assert.Equal(t, domain.CoordinateSet{domain.MustCoordinate(1, 2)}, set)
	assert.Contains(t, out.String(), "too many points")
}

func TestReadSetEOFMidPoint(t *testing.T) {
	p, _ := newPrompter("1\nd\n10\n")

	_, err := p.ReadSet("SECOND")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
