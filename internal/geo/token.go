package geo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"geo-match-service/internal/domain"
	"strconv"
)

// Token is a raw coordinate value decoded from JSON. It accepts both numbers
// (40.7128) and strings ("40.7128° N"). Strings are kept verbatim and numbers
// as plain decimal text, so the value goes through the same parser as CSV cells.
type Token string

func (t *Token) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Token(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("coordinate token must be a number or string: %s", b)
	}

	// Exponent forms (5e1) are rewritten as plain decimals; the token parser drops letters.
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("coordinate token %s: %w", b, err)
	}
	*t = Token(strconv.FormatFloat(v, 'f', -1, 64))
	return nil
}

// RawPoint is an unparsed latitude/longitude pair.
type RawPoint struct {
	Lat Token `json:"lat"`
	Lon Token `json:"lon"`
}

// Coordinate parses and validates both axes of p.
func (p RawPoint) Coordinate() (domain.Coordinate, error) {
	lat, err := ParseAxis(string(p.Lat), domain.Latitude)
	if err != nil {
		return domain.Coordinate{}, err
	}
	lon, err := ParseAxis(string(p.Lon), domain.Longitude)
	if err != nil {
		return domain.Coordinate{}, err
	}
	return domain.NewCoordinate(lat, lon)
}

// PointError locates a bad point within a list.
type PointError struct {
	Index int
	Err   error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("point %d: %v", e.Index, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

// Coordinates converts every point, stopping at the first invalid one.
func Coordinates(points []RawPoint) (domain.CoordinateSet, error) {
	out := make(domain.CoordinateSet, 0, len(points))
	for i, p := range points {
		c, err := p.Coordinate()
		if err != nil {
			return nil, &PointError{Index: i, Err: err}
		}
		out = append(out, c)
	}
	return out, nil
}
