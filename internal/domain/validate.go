package domain

import (
	"fmt"
	"math"
)

// Axis identifies which half of a coordinate a value belongs to.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

func (a Axis) String() string {
	switch a {
	case Latitude:
		return "latitude"
	case Longitude:
		return "longitude"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Bounds returns the inclusive valid range for the axis in decimal degrees.
func (a Axis) Bounds() (min, max float64) {
	if a == Latitude {
		return -90, 90
	}
	return -180, 180
}

// ParseAxis maps a user-facing name ("lat", "longitude", ...) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "lat", "latitude", "Latitude":
		return Latitude, nil
	case "lon", "lng", "longitude", "Longitude":
		return Longitude, nil
	default:
		return 0, fmt.Errorf("parse axis: unknown axis %q", s)
	}
}

// RangeError reports a value outside the valid range of its axis.
// Values are never clamped; callers decide whether to retry, skip or abort.
type RangeError struct {
	Axis  Axis
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v out of range: must be between %v and %v", e.Axis, e.Value, e.Min, e.Max)
}

// ValidateRange checks that value lies within the inclusive bounds of axis.
func ValidateRange(value float64, axis Axis) error {
	min, max := axis.Bounds()
	if math.IsNaN(value) || value < min || value > max {
		return &RangeError{Axis: axis, Value: value, Min: min, Max: max}
	}
	return nil
}
