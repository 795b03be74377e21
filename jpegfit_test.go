package jpegfit

import (
	"testing"
)

func TestParseEncoderKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EncoderKind
		wantErr bool
	}{
		{
			name:  "cjpeg",
			input: "cjpeg",
			want:  EncoderCjpeg,
		},
		{
			name:  "jpegoptim",
			input: "jpegoptim",
			want:  EncoderJpegoptim,
		},
		{
			name:  "uppercase",
			input: "CJPEG",
			want:  EncoderCjpeg,
		},
		{
			name:  "mixed case",
			input: "JpegOptim",
			want:  EncoderJpegoptim,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "unknown encoder",
			input:   "mozjpeg",
			wantErr: true,
		},
		{
			name:    "whitespace",
			input:   " cjpeg ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEncoderKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseEncoderKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseEncoderKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name: "defaults",
		},
		{
			name: "with encoder",
			opts: []Option{WithEncoder(EncoderJpegoptim)},
		},
		{
			name: "with band",
			opts: []Option{WithBand(0.01, 0.02)},
		},
		{
			name: "all options",
			opts: []Option{
				WithEncoder(EncoderCjpeg),
				WithBand(0.01, 0.02),
				WithInitialQuality(70),
				WithInitialStep(10),
				WithMaxIterations(5),
				WithVerbose(),
			},
		},
		{
			name:    "inverted band",
			opts:    []Option{WithBand(0.02, 0.01)},
			wantErr: true,
		},
		{
			name:    "negative band lower bound",
			opts:    []Option{WithBand(-0.01, 0.02)},
			wantErr: true,
		},
		{
			name:    "zero initial quality",
			opts:    []Option{WithInitialQuality(0)},
			wantErr: true,
		},
		{
			name:    "initial quality above bounds",
			opts:    []Option{WithInitialQuality(101)},
			wantErr: true,
		},
		{
			name:    "zero initial step",
			opts:    []Option{WithInitialStep(0)},
			wantErr: true,
		},
		{
			name:    "zero iteration budget",
			opts:    []Option{WithMaxIterations(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressor, err := New(tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && compressor == nil {
				t.Error("New() returned nil compressor without error")
			}
		})
	}
}

func TestParseBand(t *testing.T) {
	lower, upper, err := ParseBand("0.01425-0.0165")
	if err != nil {
		t.Fatalf("ParseBand() error = %v", err)
	}
	if lower != 0.01425 {
		t.Errorf("lower = %v, want 0.01425", lower)
	}
	if upper != 0.0165 {
		t.Errorf("upper = %v, want 0.0165", upper)
	}

	if _, _, err := ParseBand("0.02-0.01"); err == nil {
		t.Error("ParseBand(\"0.02-0.01\") expected error for inverted band")
	}
}
