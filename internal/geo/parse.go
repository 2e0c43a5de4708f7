package geo

import (
	"fmt"
	"geo-match-service/internal/domain"
	"math"
	"strconv"
	"strings"
)

// ParseError reports a token that does not contain a usable number.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q is not a valid coordinate", e.Token)
}

// ParseToken turns a raw coordinate token into signed decimal degrees.
//
// Accepted forms include plain floats ("151.2093") and floats carrying a
// trailing hemisphere letter ("33.8688° S"). Everything except ASCII letters,
// digits, '.' and '-' is discarded first. A trailing N/S/E/W (any case) forces
// the sign: S and W negative, N and E positive, overriding any sign in the
// text. Letters elsewhere in the token are dropped, so "12a3 N" reads as 123.
//
// ok is false when no number can be read; ParseToken never fails otherwise.
func ParseToken(raw string) (value float64, ok bool) {
	cleaned := strings.Map(keepTokenRune, raw)
	if cleaned == "" {
		return 0, false
	}

	var direction byte
	switch last := cleaned[len(cleaned)-1]; last {
	case 'N', 'n', 'S', 's', 'E', 'e', 'W', 'w':
		direction = last &^ 0x20 // upper-case
		cleaned = cleaned[:len(cleaned)-1]
	}

	numeric := strings.Map(dropLetter, cleaned)
	if numeric == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(numeric, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}

	switch direction {
	case 'S', 'W':
		return -math.Abs(v), true
	case 'N', 'E':
		return math.Abs(v), true
	}
	return v, true
}

func keepTokenRune(r rune) rune {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '.', r == '-':
		return r
	}
	return -1
}

func dropLetter(r rune) rune {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return -1
	}
	return r
}

// ParseAxis parses raw with ParseToken and validates it against axis.
// It returns a *ParseError for unreadable tokens and a *domain.RangeError
// for readable values outside the axis bounds.
func ParseAxis(raw string, axis domain.Axis) (float64, error) {
	v, ok := ParseToken(raw)
	if !ok {
		return 0, &ParseError{Token: raw}
	}
	if err := domain.ValidateRange(v, axis); err != nil {
		return 0, err
	}
	return v, nil
}

// ParseDMS converts degrees, minutes and seconds to decimal degrees.
// The sign of degrees applies to the whole angle, including negative zero,
// so (-0, 30, 0) is -0.5. Range checks are left to the caller.
func ParseDMS(degrees, minutes, seconds float64) float64 {
	sign := 1.0
	if math.Signbit(degrees) {
		sign = -1
	}
	return sign * (math.Abs(degrees) + minutes/60 + seconds/3600)
}
