// Package config provides configuration types and defaults for jpegfit.
package config

import (
	"fmt"
	"strings"
)

// Default constants
const (
	// DefaultInitialQuality is the quality level of the first probe.
	DefaultInitialQuality int = 80

	// DefaultInitialStep is the starting magnitude of quality adjustments.
	DefaultInitialStep int = 20

	// DefaultBandLower is the inclusive lower bound of the tolerance band.
	DefaultBandLower float64 = 0.014250

	// DefaultBandUpper is the exclusive upper bound of the tolerance band.
	DefaultBandUpper float64 = 0.016500

	// DefaultMaxIterations is the probe budget per search.
	DefaultMaxIterations int = 7

	// MinQualityLevel is the lowest quality level either encoder accepts.
	MinQualityLevel int = 1

	// MaxQualityLevel is the highest quality level either encoder accepts.
	MaxQualityLevel int = 100
)

// EncoderKind selects which re-encoder backs the search.
type EncoderKind string

const (
	EncoderCjpeg     EncoderKind = "cjpeg"
	EncoderJpegoptim EncoderKind = "jpegoptim"
)

// DefaultEncoder is the re-encoder used when none is selected.
const DefaultEncoder = EncoderCjpeg

// ParseEncoderKind parses a string into an EncoderKind.
func ParseEncoderKind(s string) (EncoderKind, error) {
	switch strings.ToLower(s) {
	case "cjpeg":
		return EncoderCjpeg, nil
	case "jpegoptim":
		return EncoderJpegoptim, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: cjpeg, jpegoptim", ErrInvalidEncoder, s)
	}
}

// String returns the string representation of the encoder kind.
func (k EncoderKind) String() string {
	return string(k)
}

// Config holds all configuration for image processing.
type Config struct {
	// Output paths
	OutputDir string
	LogDir    string

	// Encoder selection (made once, before any search begins)
	Encoder EncoderKind

	// Search parameters
	InitialQuality int
	InitialStep    int
	BandLower      float64
	BandUpper      float64
	MaxIterations  int

	// Logging options
	Verbose bool
	NoLog   bool
}

// NewConfig creates a new Config with default values.
func NewConfig(outputDir, logDir string) *Config {
	return &Config{
		OutputDir:      outputDir,
		LogDir:         logDir,
		Encoder:        DefaultEncoder,
		InitialQuality: DefaultInitialQuality,
		InitialStep:    DefaultInitialStep,
		BandLower:      DefaultBandLower,
		BandUpper:      DefaultBandUpper,
		MaxIterations:  DefaultMaxIterations,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Encoder {
	case EncoderCjpeg, EncoderJpegoptim:
	default:
		return fmt.Errorf("%w: '%s', valid options: cjpeg, jpegoptim", ErrInvalidEncoder, c.Encoder)
	}

	if c.BandLower < 0 {
		return fmt.Errorf("%w: lower bound must be non-negative, got %g", ErrInvalidBand, c.BandLower)
	}

	if c.BandLower >= c.BandUpper {
		return fmt.Errorf("%w: lower bound %g must be below upper bound %g", ErrInvalidBand, c.BandLower, c.BandUpper)
	}

	if c.InitialQuality < MinQualityLevel || c.InitialQuality > MaxQualityLevel {
		return fmt.Errorf("%w: must be %d-%d, got %d", ErrInvalidQuality, MinQualityLevel, MaxQualityLevel, c.InitialQuality)
	}

	if c.InitialStep < 1 {
		return fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidStep, c.InitialStep)
	}

	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidIterations, c.MaxIterations)
	}

	return nil
}
