package main

import (
	"context"
	"geo-match-service/internal/adapters/csvsource"
	"geo-match-service/internal/adapters/storage"
	"geo-match-service/internal/config"
	"geo-match-service/internal/ports"
)

// routedSource sends s3:// names to object storage and everything else to disk.
// The S3 client is only built when an s3:// name is first seen.
type routedSource struct {
	Dir   string
	NewS3 func() (ports.RowSource, error)

	files ports.RowSource
	s3    ports.RowSource
}

func (r *routedSource) ReadRows(ctx context.Context, name string) ([]map[string]string, error) {
	if storage.IsObjectURI(name) {
		if r.s3 == nil {
			src, err := r.NewS3()
			if err != nil {
				return nil, err
			}
			r.s3 = src
		}
		return r.s3.ReadRows(ctx, name)
	}

	if r.files == nil {
		r.files = csvsource.NewFileSource(r.Dir)
	}
	return r.files.ReadRows(ctx, name)
}

func s3FromConfig() (ports.RowSource, error) {
	return storage.NewS3Source(storage.S3Config{
		Endpoint:  config.Get("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: config.Get("MINIO_ACCESS_KEY", ""),
		SecretKey: config.Get("MINIO_SECRET_KEY", ""),
		Bucket:    config.Get("MINIO_BUCKET", ""),
		UseSSL:    config.GetBool("MINIO_USE_SSL", false),
	})
}
