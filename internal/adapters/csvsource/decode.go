// Package csvsource reads point tables from CSV into column-keyed rows.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\uFEFF"

// DecodeRows reads a CSV document whose first record is the header.
// Each following record becomes a map from header name to cell text.
// Header names and cells are trimmed; short records are padded with empty
// cells and extra cells beyond the header are ignored.
func DecodeRows(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("decode rows: csv has no header")
	}
	if err != nil {
		return nil, fmt.Errorf("decode rows: read header: %w", err)
	}

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, 64)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode rows: line %d: %w", line, err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
