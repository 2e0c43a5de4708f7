// Package prompt reads coordinates interactively, re-asking until each answer is valid.
package prompt

import (
	"bufio"
	"fmt"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/geo"
	"io"
	"math"
	"strconv"
	"strings"
)

// Prompter asks questions on out and reads answers line by line from in.
// Running out of input aborts with io.ErrUnexpectedEOF.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) readLine(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// readValue loops until a line parses as a float and passes check.
func (p *Prompter) readValue(question string, check func(float64) error) (float64, error) {
	for {
		line, err := p.readLine(question)
		if err != nil {
			return 0, err
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			p.printf("Error: '%s' is not a valid number. Please try again.\n", line)
			continue
		}
		if err := check(v); err != nil {
			p.printf("Error: %v.\n", err)
			continue
		}
		return v, nil
	}
}

// ReadFloat asks until the answer is a number within [min, max].
func (p *Prompter) ReadFloat(label string, min, max float64) (float64, error) {
	return p.readValue(label, func(v float64) error {
		if v < min || v > max {
			return fmt.Errorf("value %v out of range, must be between %v and %v", v, min, max)
		}
		return nil
	})
}

func readSexagesimal(v float64) error {
	if v < 0 || v >= 60 {
		return fmt.Errorf("value %v out of range, must be at least 0 and below 60", v)
	}
	return nil
}

// ReadDMS asks for degrees, minutes and seconds and returns decimal degrees.
// The whole triple is asked again when the combined angle leaves the axis range.
func (p *Prompter) ReadDMS(axis domain.Axis) (float64, error) {
	min, max := axis.Bounds()
	for {
		d, err := p.ReadFloat(fmt.Sprintf("Enter degrees for %s (between %v and %v): ", axis, min, max), min, max)
		if err != nil {
			return 0, err
		}
		m, err := p.readValue(fmt.Sprintf("Enter minutes for %s (0 to <60): ", axis), readSexagesimal)
		if err != nil {
			return 0, err
		}
		s, err := p.readValue(fmt.Sprintf("Enter seconds for %s (0 to <60): ", axis), readSexagesimal)
		if err != nil {
			return 0, err
		}

		v := geo.ParseDMS(d, m, s)
		if err := domain.ValidateRange(v, axis); err != nil {
			p.printf("Error: %v. Please enter the angle again.\n", err)
			continue
		}
		return v, nil
	}
}

// ReadAxis lets the user choose decimal (d) or DMS (dm) entry for one axis.
func (p *Prompter) ReadAxis(axis domain.Axis) (float64, error) {
	for {
		choice, err := p.readLine(fmt.Sprintf("Do you want to enter %s in decimal (d) or DMS (dm)? [d/dm]: ", axis))
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(choice) {
		case "d":
			min, max := axis.Bounds()
			return p.ReadFloat(fmt.Sprintf("Enter %s in decimal degrees: ", axis), min, max)
		case "dm":
			return p.ReadDMS(axis)
		default:
			p.printf("Invalid choice. Type 'd' or 'dm'.\n")
		}
	}
}

// MaxCount bounds how many points one interactively entered set may hold.
const MaxCount = 10000

// ReadCount asks until the answer is a whole number between 1 and MaxCount.
func (p *Prompter) ReadCount(question string) (int, error) {
	for {
		line, err := p.readLine(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 {
			p.printf("Error: '%s' is not a whole number of at least 1. Please try again.\n", line)
			continue
		}
		if n > MaxCount {
			p.printf("Error: %d is too many points, at most %d can be entered. Please try again.\n", n, MaxCount)
			continue
		}
		return n, nil
	}
}

// ReadSet asks how many points a set holds, then reads each point.
func (p *Prompter) ReadSet(label string) (domain.CoordinateSet, error) {
	n, err := p.ReadCount(fmt.Sprintf("How many geo locations are in your %s array? ", label))
	if err != nil {
		return nil, err
	}

	var set domain.CoordinateSet
	for i := range n {
		p.printf("\n%s array: Enter coordinates for point #%d.\n", label, i+1)

		lat, err := p.ReadAxis(domain.Latitude)
		if err != nil {
			return nil, err
		}
		lon, err := p.ReadAxis(domain.Longitude)
		if err != nil {
			return nil, err
		}

		c, err := domain.NewCoordinate(lat, lon)
		if err != nil {
			return nil, fmt.Errorf("read %s point #%d: %w", label, i+1, err)
		}
		set = append(set, c)
	}
	return set, nil
}
