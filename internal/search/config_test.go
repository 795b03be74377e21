package search

import (
	"testing"

	"github.com/pixelband/jpegfit/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InitialQuality != 80 {
		t.Errorf("DefaultConfig().InitialQuality = %v, want 80", cfg.InitialQuality)
	}

	if cfg.InitialStep != 20 {
		t.Errorf("DefaultConfig().InitialStep = %v, want 20", cfg.InitialStep)
	}

	if cfg.LowerBound != 0.014250 {
		t.Errorf("DefaultConfig().LowerBound = %v, want 0.014250", cfg.LowerBound)
	}

	if cfg.UpperBound != 0.016500 {
		t.Errorf("DefaultConfig().UpperBound = %v, want 0.016500", cfg.UpperBound)
	}

	if cfg.MaxIterations != 7 {
		t.Errorf("DefaultConfig().MaxIterations = %v, want 7", cfg.MaxIterations)
	}

	if cfg.MinQuality != 1 {
		t.Errorf("DefaultConfig().MinQuality = %v, want 1", cfg.MinQuality)
	}

	if cfg.MaxQuality != 100 {
		t.Errorf("DefaultConfig().MaxQuality = %v, want 100", cfg.MaxQuality)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults valid",
			modify: func(c *Config) {},
		},
		{
			name:    "negative lower bound",
			modify:  func(c *Config) { c.LowerBound = -0.001 },
			wantErr: true,
		},
		{
			name:    "lower bound equals upper",
			modify:  func(c *Config) { c.LowerBound = c.UpperBound },
			wantErr: true,
		},
		{
			name:    "lower bound above upper",
			modify:  func(c *Config) { c.LowerBound = 0.02; c.UpperBound = 0.01 },
			wantErr: true,
		},
		{
			name:    "zero min quality",
			modify:  func(c *Config) { c.MinQuality = 0 },
			wantErr: true,
		},
		{
			name:    "min quality equals max",
			modify:  func(c *Config) { c.MinQuality = c.MaxQuality },
			wantErr: true,
		},
		{
			name:    "initial quality below floor",
			modify:  func(c *Config) { c.InitialQuality = 0 },
			wantErr: true,
		},
		{
			name:    "initial quality above ceiling",
			modify:  func(c *Config) { c.InitialQuality = 101 },
			wantErr: true,
		},
		{
			name:   "initial quality at floor",
			modify: func(c *Config) { c.InitialQuality = 1 },
		},
		{
			name:   "initial quality at ceiling",
			modify: func(c *Config) { c.InitialQuality = 100 },
		},
		{
			name:    "zero step",
			modify:  func(c *Config) { c.InitialStep = 0 },
			wantErr: true,
		},
		{
			name:    "zero iteration budget",
			modify:  func(c *Config) { c.MaxIterations = 0 },
			wantErr: true,
		},
		{
			name:   "single iteration budget",
			modify: func(c *Config) { c.MaxIterations = 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() error = nil, want error")
				}
				if !errors.IsKind(err, errors.KindConfig) {
					t.Errorf("IsKind(err, KindConfig) = false, want true for %v", err)
				}
				return
			}

			if err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestParseBand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLower float64
		wantUpper float64
		wantErr   bool
	}{
		{
			name:      "default band",
			input:     "0.01425-0.0165",
			wantLower: 0.01425,
			wantUpper: 0.0165,
		},
		{
			name:      "band with spaces",
			input:     " 0.01 - 0.02 ",
			wantLower: 0.01,
			wantUpper: 0.02,
		},
		{
			name:      "integer bounds",
			input:     "0-1",
			wantLower: 0,
			wantUpper: 1,
		},
		{
			name:    "invalid - no separator",
			input:   "0.0150.02",
			wantErr: true,
		},
		{
			name:    "invalid - scientific notation",
			input:   "1e-2-2e-2",
			wantErr: true,
		},
		{
			name:    "invalid - lower >= upper",
			input:   "0.02-0.01",
			wantErr: true,
		},
		{
			name:    "invalid - equal bounds",
			input:   "0.015-0.015",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric lower",
			input:   "abc-0.02",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric upper",
			input:   "0.01-xyz",
			wantErr: true,
		},
		{
			name:    "invalid - empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower, upper, err := ParseBand(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBand(%q) error = nil, want error", tt.input)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseBand(%q) error = %v, want nil", tt.input, err)
				return
			}

			if lower != tt.wantLower {
				t.Errorf("ParseBand(%q) lower = %v, want %v", tt.input, lower, tt.wantLower)
			}

			if upper != tt.wantUpper {
				t.Errorf("ParseBand(%q) upper = %v, want %v", tt.input, upper, tt.wantUpper)
			}
		})
	}
}
