// Package search provides the bounded quality search that converges a JPEG
// quality level toward a target dissimilarity band.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pixelband/jpegfit/internal/errors"
)

// Config holds the immutable parameters of one search run.
type Config struct {
	// InitialQuality is the quality level of the first probe.
	InitialQuality int

	// InitialStep is the starting adjustment magnitude.
	InitialStep int

	// LowerBound and UpperBound define the acceptance band for
	// dissimilarity scores. The band is half-open: a score equal to
	// LowerBound is inside, a score equal to UpperBound is not.
	LowerBound float64
	UpperBound float64

	// MaxIterations is the probe budget before the search gives up.
	MaxIterations int

	// MinQuality and MaxQuality are the hard quality bounds the walk
	// cannot leave.
	MinQuality int
	MaxQuality int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialQuality: 80,
		InitialStep:    20,
		LowerBound:     0.014250,
		UpperBound:     0.016500,
		MaxIterations:  7,
		MinQuality:     1,
		MaxQuality:     100,
	}
}

// Validate checks the search parameters.
func (c Config) Validate() error {
	if c.LowerBound < 0 {
		return errors.NewConfigError(fmt.Sprintf("band lower bound must be non-negative, got %g", c.LowerBound))
	}

	if c.LowerBound >= c.UpperBound {
		return errors.NewConfigError(fmt.Sprintf("band lower bound (%g) must be below upper bound (%g)", c.LowerBound, c.UpperBound))
	}

	if c.MinQuality < 1 || c.MinQuality >= c.MaxQuality {
		return errors.NewConfigError(fmt.Sprintf("quality bounds %d-%d invalid", c.MinQuality, c.MaxQuality))
	}

	if c.InitialQuality < c.MinQuality || c.InitialQuality > c.MaxQuality {
		return errors.NewConfigError(fmt.Sprintf("initial quality %d outside bounds %d-%d", c.InitialQuality, c.MinQuality, c.MaxQuality))
	}

	if c.InitialStep < 1 {
		return errors.NewConfigError(fmt.Sprintf("initial step must be at least 1, got %d", c.InitialStep))
	}

	if c.MaxIterations < 1 {
		return errors.NewConfigError(fmt.Sprintf("iteration budget must be at least 1, got %d", c.MaxIterations))
	}

	return nil
}

// ParseBand parses a tolerance band string (e.g., "0.01425-0.0165").
// Bounds must be plain decimals: the separator is a bare '-', so
// scientific notation like "1e-2" cannot be distinguished from it.
func ParseBand(s string) (lower, upper float64, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid band format %q, expected 'lower-upper' (e.g., '0.01425-0.0165')", s)
	}

	lower, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid band lower bound %q: %w", parts[0], err)
	}

	upper, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid band upper bound %q: %w", parts[1], err)
	}

	if lower >= upper {
		return 0, 0, fmt.Errorf("band lower bound (%v) must be less than upper bound (%v)", lower, upper)
	}

	return lower, upper, nil
}
