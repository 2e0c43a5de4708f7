package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOpener(objects map[string]string) func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return func(_ context.Context, bucket, key string) (io.ReadCloser, error) {
		body, ok := objects[bucket+"/"+key]
		if !ok {
			return nil, ErrObjectNotFound
		}
		return io.NopCloser(strings.NewReader(body)), nil
	}
}

func TestParseObjectURI(t *testing.T) {
	cases := []struct {
		name       string
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{"simple", "s3://sites/reference.csv", "sites", "reference.csv", false},
		{"nested key", "s3://sites/2026/10/readings.csv", "sites", "2026/10/readings.csv", false},
		{"missing scheme", "sites/reference.csv", "", "", true},
		{"missing key", "s3://sites", "", "", true},
		{"empty key", "s3://sites/", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, key, err := ParseObjectURI(tc.uri)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBucket, bucket)
			assert.Equal(t, tc.wantKey, key)
		})
	}
}

func TestS3SourceReadRows(t *testing.T) {
	src := &S3Source{
		bucket: "readings",
		open: fakeOpener(map[string]string{
			"readings/day1.csv": "lat,lon\n1,2\n3,4\n",
			"sites/all.csv":     "latitude,longitude\n10 N,20 W\n",
		}),
	}

	rows, err := src.ReadRows(context.Background(), "day1.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1]["lat"])

	rows, err = src.ReadRows(context.Background(), "s3://sites/all.csv")
	require.NoError(t, err)
	assert.Equal(t, "20 W", rows[0]["longitude"])

	_, err = src.ReadRows(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	_, err = (&S3Source{open: src.open}).ReadRows(context.Background(), "day1.csv")
	assert.Error(t, err, "no bucket configured")
}
