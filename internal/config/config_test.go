package config

import (
	"errors"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/output", "/log")

	if cfg.OutputDir != "/output" {
		t.Errorf("expected OutputDir=/output, got %s", cfg.OutputDir)
	}
	if cfg.LogDir != "/log" {
		t.Errorf("expected LogDir=/log, got %s", cfg.LogDir)
	}

	// Check defaults
	if cfg.Encoder != DefaultEncoder {
		t.Errorf("expected Encoder=%s, got %s", DefaultEncoder, cfg.Encoder)
	}
	if cfg.InitialQuality != DefaultInitialQuality {
		t.Errorf("expected InitialQuality=%d, got %d", DefaultInitialQuality, cfg.InitialQuality)
	}
	if cfg.InitialStep != DefaultInitialStep {
		t.Errorf("expected InitialStep=%d, got %d", DefaultInitialStep, cfg.InitialStep)
	}
	if cfg.BandLower != DefaultBandLower {
		t.Errorf("expected BandLower=%g, got %g", DefaultBandLower, cfg.BandLower)
	}
	if cfg.BandUpper != DefaultBandUpper {
		t.Errorf("expected BandUpper=%g, got %g", DefaultBandUpper, cfg.BandUpper)
	}
	if cfg.MaxIterations != DefaultMaxIterations {
		t.Errorf("expected MaxIterations=%d, got %d", DefaultMaxIterations, cfg.MaxIterations)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(*Config)
		wantErr      bool
		wantSentinel error
	}{
		{
			name:    "default config is valid",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:         "unknown encoder is invalid",
			modify:       func(c *Config) { c.Encoder = "guetzli" },
			wantErr:      true,
			wantSentinel: ErrInvalidEncoder,
		},
		{
			name:    "jpegoptim encoder is valid",
			modify:  func(c *Config) { c.Encoder = EncoderJpegoptim },
			wantErr: false,
		},
		{
			name:         "negative lower bound is invalid",
			modify:       func(c *Config) { c.BandLower = -0.001 },
			wantErr:      true,
			wantSentinel: ErrInvalidBand,
		},
		{
			name: "inverted band is invalid",
			modify: func(c *Config) {
				c.BandLower = 0.02
				c.BandUpper = 0.01
			},
			wantErr:      true,
			wantSentinel: ErrInvalidBand,
		},
		{
			name: "degenerate band is invalid",
			modify: func(c *Config) {
				c.BandLower = 0.015
				c.BandUpper = 0.015
			},
			wantErr:      true,
			wantSentinel: ErrInvalidBand,
		},
		{
			name:         "quality 0 is invalid",
			modify:       func(c *Config) { c.InitialQuality = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidQuality,
		},
		{
			name:         "quality 101 is invalid",
			modify:       func(c *Config) { c.InitialQuality = 101 },
			wantErr:      true,
			wantSentinel: ErrInvalidQuality,
		},
		{
			name:    "quality 1 is valid",
			modify:  func(c *Config) { c.InitialQuality = 1 },
			wantErr: false,
		},
		{
			name:    "quality 100 is valid",
			modify:  func(c *Config) { c.InitialQuality = 100 },
			wantErr: false,
		},
		{
			name:         "step 0 is invalid",
			modify:       func(c *Config) { c.InitialStep = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidStep,
		},
		{
			name:         "zero iterations is invalid",
			modify:       func(c *Config) { c.MaxIterations = 0 },
			wantErr:      true,
			wantSentinel: ErrInvalidIterations,
		},
		{
			name:    "single iteration is valid",
			modify:  func(c *Config) { c.MaxIterations = 1 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/output", "/log")
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("Validate() error = %v, want sentinel %v", err, tt.wantSentinel)
			}
		})
	}
}

func TestParseEncoderKind(t *testing.T) {
	tests := []struct {
		input        string
		want         EncoderKind
		wantErr      bool
		wantSentinel error
	}{
		{"cjpeg", EncoderCjpeg, false, nil},
		{"CJPEG", EncoderCjpeg, false, nil},
		{"Cjpeg", EncoderCjpeg, false, nil},
		{"jpegoptim", EncoderJpegoptim, false, nil},
		{"JPEGOPTIM", EncoderJpegoptim, false, nil},
		{"mozjpeg", "", true, ErrInvalidEncoder},
		{"", "", true, ErrInvalidEncoder},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEncoderKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseEncoderKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("ParseEncoderKind(%q) error = %v, want sentinel %v", tt.input, err, tt.wantSentinel)
			}
			if got != tt.want {
				t.Errorf("ParseEncoderKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
