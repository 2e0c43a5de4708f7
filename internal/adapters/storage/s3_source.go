package storage

import (
	"context"
	"errors"
	"fmt"
	"geo-match-service/internal/adapters/csvsource"
	"geo-match-service/internal/platform/obs"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrObjectNotFound is returned when the requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Source reads CSV point tables stored as objects in S3-compatible storage.
type S3Source struct {
	bucket string
	open   func(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// NewS3Source connects to the MinIO/S3 endpoint described by cfg.
func NewS3Source(cfg S3Config) (*S3Source, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("new s3 source: endpoint, access key and secret key are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("new s3 source: create minio client: %w", err)
	}

	log.Printf("s3 source endpoint=%s bucket=%s", cfg.Endpoint, cfg.Bucket)
	return &S3Source{bucket: cfg.Bucket, open: minioOpener(client)}, nil
}

func minioOpener(client *minio.Client) func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return func(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}

		// GetObject is lazy; Stat surfaces a missing key before decoding starts.
		if _, err := obj.Stat(); err != nil {
			_ = obj.Close()
			if minio.ToErrorResponse(err).Code == "NoSuchKey" {
				return nil, ErrObjectNotFound
			}
			return nil, err
		}
		return obj, nil
	}
}

// ReadRows fetches name from the bucket and decodes it as CSV. name is either a
// key in the configured bucket or a full "s3://bucket/key" URI.
func (s *S3Source) ReadRows(ctx context.Context, name string) (_ []map[string]string, err error) {
	defer obs.Time(ctx, "s3.ReadRows")(&err)

	bucket, key := s.bucket, name
	if strings.HasPrefix(name, "s3://") {
		bucket, key, err = ParseObjectURI(name)
		if err != nil {
			return nil, err
		}
	}
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("read s3 rows: bucket and key must be non-empty (bucket=%q key=%q)", bucket, key)
	}

	body, err := s.open(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("read s3 rows: get %s/%s: %w", bucket, key, err)
	}
	defer body.Close()

	rows, err := csvsource.DecodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("read s3 rows %s/%s: %w", bucket, key, err)
	}
	return rows, nil
}

// ParseObjectURI splits "s3://bucket/path/to/key" into bucket and key.
func ParseObjectURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("parse object uri %q: missing s3:// scheme", uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("parse object uri %q: want s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// IsObjectURI reports whether name should be read through S3Source.
func IsObjectURI(name string) bool {
	return strings.HasPrefix(name, "s3://")
}
