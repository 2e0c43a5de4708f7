package csvsource

import (
	"context"
	"errors"
	"fmt"
	"geo-match-service/internal/platform/obs"
	"os"
	"path/filepath"
)

// FileSource reads CSV files from the local filesystem.
// Relative names are resolved against Dir when it is set.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) path(name string) string {
	if s.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Dir, name)
}

func (s *FileSource) ReadRows(ctx context.Context, name string) (_ []map[string]string, err error) {
	defer obs.Time(ctx, "csv.ReadRows")(&err)

	if name == "" {
		return nil, errors.New("read csv rows: name must be non-empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := s.path(name)
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("read csv rows: open %q: %w", p, err)
	}
	defer f.Close()

	rows, err := DecodeRows(f)
	if err != nil {
		return nil, fmt.Errorf("read csv rows %q: %w", p, err)
	}
	return rows, nil
}
