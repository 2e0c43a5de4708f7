package domain

import (
	"encoding/json"
	"fmt"
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
// The zero value is (0, 0); every other value comes from NewCoordinate,
// so a Coordinate is always within range.
type Coordinate struct {
	lat float64
	lon float64
}

// NewCoordinate validates both axes before building the value.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if err := ValidateRange(lat, Latitude); err != nil {
		return Coordinate{}, fmt.Errorf("new coordinate: %w", err)
	}
	if err := ValidateRange(lon, Longitude); err != nil {
		return Coordinate{}, fmt.Errorf("new coordinate: %w", err)
	}
	return Coordinate{lat: lat, lon: lon}, nil
}

// MustCoordinate is NewCoordinate for literals known to be valid.
func MustCoordinate(lat, lon float64) Coordinate {
	c, err := NewCoordinate(lat, lon)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Coordinate) Lat() float64 { return c.lat }
func (c Coordinate) Lon() float64 { return c.lon }

func (c Coordinate) String() string {
	return fmt.Sprintf("(%v, %v)", c.lat, c.lon)
}

type coordinateJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordinateJSON{Lat: c.lat, Lon: c.lon})
}

// UnmarshalJSON goes through NewCoordinate, so decoding cannot bypass validation.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	var raw coordinateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := NewCoordinate(raw.Lat, raw.Lon)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Ordered sequence of coordinates. Order is significant: it fixes result
// order and index correspondence with the caller's input.
type CoordinateSet []Coordinate
