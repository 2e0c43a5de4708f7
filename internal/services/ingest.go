package services

import (
	"context"
	"errors"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/geo"
	"geo-match-service/internal/ports"
	"strings"
)

// Column names tried, in order, when resolving each axis of a row.
var (
	LatitudeColumns  = []string{"latitude", "lat", "Latitude"}
	LongitudeColumns = []string{"longitude", "lon", "Longitude"}
)

var errMissingValue = errors.New("no non-empty value in any known column")

// RowIssue describes a row that was skipped during ingestion.
// Row is the 1-based index among data rows (the header is not counted).
type RowIssue struct {
	Row    int
	Axis   domain.Axis
	Column string
	Token  string
	Err    error
}

func (i RowIssue) Error() string {
	if i.Column == "" {
		return fmt.Sprintf("row %d: %s: %v", i.Row, i.Axis, i.Err)
	}
	return fmt.Sprintf("row %d: %s column %q value %q: %v", i.Row, i.Axis, i.Column, i.Token, i.Err)
}

func (i RowIssue) Unwrap() error { return i.Err }

// IngestRows converts raw rows into coordinates.
//
// For each axis the first non-empty cell among the known column names is
// parsed and range-checked. A row becomes a coordinate only if both axes
// succeed; otherwise it is skipped and reported. Output order follows input order.
func IngestRows(rows []map[string]string) (domain.CoordinateSet, []RowIssue) {
	set := make(domain.CoordinateSet, 0, len(rows))
	var issues []RowIssue

	for i, row := range rows {
		lat, issue := ingestAxis(row, i+1, domain.Latitude, LatitudeColumns)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}

		lon, issue := ingestAxis(row, i+1, domain.Longitude, LongitudeColumns)
		if issue != nil {
			issues = append(issues, *issue)
			continue
		}

		c, err := domain.NewCoordinate(lat, lon)
		if err != nil {
			issues = append(issues, RowIssue{Row: i + 1, Err: err})
			continue
		}
		set = append(set, c)
	}

	return set, issues
}

func ingestAxis(row map[string]string, rowNum int, axis domain.Axis, columns []string) (float64, *RowIssue) {
	column, token, ok := resolveCell(row, columns)
	if !ok {
		return 0, &RowIssue{Row: rowNum, Axis: axis, Err: errMissingValue}
	}

	v, err := geo.ParseAxis(token, axis)
	if err != nil {
		return 0, &RowIssue{Row: rowNum, Axis: axis, Column: column, Token: token, Err: err}
	}
	return v, nil
}

func resolveCell(row map[string]string, columns []string) (column, value string, ok bool) {
	for _, c := range columns {
		v, found := row[c]
		if !found {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return c, v, true
		}
	}
	return "", "", false
}

// LoadSet reads the named input from src and ingests it.
// Only a failure to read the input is returned as an error; bad rows are issues.
func LoadSet(ctx context.Context, src ports.RowSource, name string) (domain.CoordinateSet, []RowIssue, error) {
	if src == nil {
		return nil, nil, errors.New("load set: row source is nil")
	}

	rows, err := src.ReadRows(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("load set %q: %w", name, err)
	}

	set, issues := IngestRows(rows)
	return set, issues, nil
}
