package ports

import "context"

// Port: a boundary for reading tabular point data (CSV files, objects).
// Each row maps column name to raw cell text; parsing is left to the core.
type RowSource interface {
	// Return all data rows of the named input, header excluded.
	ReadRows(ctx context.Context, name string) ([]map[string]string, error)
}
