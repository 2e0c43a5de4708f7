package main

import (
	"context"
	"errors"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/ports"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResult(t *testing.T) {
	r := domain.NewMatchResult(domain.MustCoordinate(51.5074, -0.1278), domain.MustCoordinate(48.8566, 2.3522), 343.556)
	assert.Equal(t,
		"  - geo location #1 in FIRST array (51.5074, -0.1278) is closest to (48.8566, 2.3522) with a distance of 343.56 km.",
		formatResult(1, r))

	none := domain.NoMatch(domain.MustCoordinate(1, 2))
	assert.Equal(t,
		"  - geo location #3 in FIRST array (1, 2) has no match: SECOND array is empty.",
		formatResult(3, none))
}

func TestRunFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.csv"),
		[]byte("lat,lon\n1,1\nbad,0\n9,9\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.csv"),
		[]byte("Latitude,Longitude\n0,0\n10,10\n"), 0o644))

	var out strings.Builder
	err := run(context.Background(), options{source: "first.csv", target: "second.csv", dir: dir, workers: 2}, nil, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "skipped first.csv: row 2: latitude")
	assert.Contains(t, got, "#1 in FIRST array (1, 1) is closest to (0, 0)")
	assert.Contains(t, got, "#2 in FIRST array (9, 9) is closest to (10, 10)")
}

func TestRunInteractive(t *testing.T) {
	input := strings.Join([]string{
		"1", "d", "0", "d", "0",
		"2", "d", "0", "d", "1", "dm", "0", "30", "0", "d", "0",
	}, "\n") + "\n"

	var out strings.Builder
	err := run(context.Background(), options{interactive: true}, strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "#1 in FIRST array (0, 0) is closest to (0.5, 0) with a distance of 55.60 km.")
}

func TestRunRequiresInputs(t *testing.T) {
	err := run(context.Background(), options{source: "a.csv"}, nil, &strings.Builder{})
	assert.Error(t, err)
}

type stubSource struct{ rows []map[string]string }

func (s stubSource) ReadRows(context.Context, string) ([]map[string]string, error) {
	return s.rows, nil
}

func TestRoutedSource(t *testing.T) {
	built := 0
	r := &routedSource{
		Dir: t.TempDir(),
		NewS3: func() (ports.RowSource, error) {
			built++
			return stubSource{rows: []map[string]string{{"lat": "1", "lon": "2"}}}, nil
		},
	}

	rows, err := r.ReadRows(context.Background(), "s3://bucket/points.csv")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	_, err = r.ReadRows(context.Background(), "s3://bucket/other.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, built)

	_, err = r.ReadRows(context.Background(), "missing.csv")
	assert.Error(t, err)

	failing := &routedSource{NewS3: func() (ports.RowSource, error) { return nil, errors.New("no creds") }}
	_, err = failing.ReadRows(context.Background(), "s3://b/k")
	assert.EqualError(t, err, "no creds")
}
