// Package probe composes an encoder and a scorer into a single quality
// measurement for the search loop.
package probe

import (
	"context"
	"fmt"

	"github.com/pixelband/jpegfit/internal/errors"
	"github.com/pixelband/jpegfit/internal/raster"
)

// Encoder re-encodes source image bytes at a quality level.
type Encoder interface {
	Encode(ctx context.Context, source []byte, quality int) ([]byte, error)
	Name() string
	Check() error
}

// Scorer measures perceptual dissimilarity between two rasters.
type Scorer interface {
	Score(ctx context.Context, reference, candidate raster.Raster) (float64, error)
	Name() string
	Check() error
}

// Prober measures the dissimilarity cost of one quality level: encode the
// source, normalize the result, score it against the reference.
type Prober struct {
	encoder   Encoder
	scorer    Scorer
	source    []byte
	reference raster.Raster
}

// New builds a Prober for one source image. The reference raster is
// normalized once and reused by every measurement.
func New(encoder Encoder, scorer Scorer, source []byte) (*Prober, error) {
	reference, err := raster.Normalize(source)
	if err != nil {
		return nil, errors.NewValidationError("source image could not be decoded", err)
	}

	return &Prober{
		encoder:   encoder,
		scorer:    scorer,
		source:    source,
		reference: reference,
	}, nil
}

// Reference returns the normalized source raster.
func (p *Prober) Reference() raster.Raster {
	return p.reference
}

// Measure re-encodes the source at the given quality and scores the result
// against the reference.
func (p *Prober) Measure(ctx context.Context, quality int) (float64, error) {
	encoded, err := p.encoder.Encode(ctx, p.source, quality)
	if err != nil {
		return 0, err
	}

	candidate, err := raster.Normalize(encoded)
	if err != nil {
		return 0, errors.NewScoringError(
			fmt.Sprintf("%s produced undecodable output at quality %d", p.encoder.Name(), quality), err)
	}

	return p.scorer.Score(ctx, p.reference, candidate)
}
