// Package config provides configuration types and defaults for jpegfit.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidEncoder indicates an unknown encoder name was provided.
	ErrInvalidEncoder = errors.New("invalid encoder")

	// ErrInvalidBand indicates a tolerance band whose bounds are not ordered.
	ErrInvalidBand = errors.New("tolerance band invalid")

	// ErrInvalidQuality indicates a quality level outside the valid 1-100 range.
	ErrInvalidQuality = errors.New("quality level out of range")

	// ErrInvalidStep indicates a non-positive initial step size.
	ErrInvalidStep = errors.New("step size out of range")

	// ErrInvalidIterations indicates a non-positive iteration budget.
	ErrInvalidIterations = errors.New("iteration budget out of range")
)
