// Package jpegfit provides adaptive JPEG re-encoding driven by a
// perceptual dissimilarity metric.
//
// jpegfit re-encodes an image repeatedly, searching for the quality level
// whose dissimilarity score against the source lands inside a tolerance
// band. The search starts at a configurable quality, halves its step each
// iteration, and gives up after a bounded number of probes, keeping the
// best-effort level it reached.
//
// Basic usage:
//
//	compressor, err := jpegfit.New(
//	    jpegfit.WithEncoder(jpegfit.EncoderCjpeg),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := compressor.CompressFile(ctx, "input.jpg", "output/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Re-encoded at quality %d, reduction: %.1f%%\n",
//	    result.Quality, result.SizeReductionPercent)
package jpegfit

import (
	"context"
	"fmt"

	"github.com/pixelband/jpegfit/internal/config"
	"github.com/pixelband/jpegfit/internal/discovery"
	"github.com/pixelband/jpegfit/internal/processing"
	"github.com/pixelband/jpegfit/internal/reporter"
	"github.com/pixelband/jpegfit/internal/search"
	"github.com/pixelband/jpegfit/internal/util"
)

// EncoderKind selects which re-encoder backs the search.
type EncoderKind = config.EncoderKind

const (
	EncoderCjpeg     = config.EncoderCjpeg
	EncoderJpegoptim = config.EncoderJpegoptim
)

// ParseEncoderKind converts an encoder name to an EncoderKind.
// Valid values are "cjpeg" and "jpegoptim" (case-insensitive).
func ParseEncoderKind(s string) (EncoderKind, error) {
	return config.ParseEncoderKind(s)
}

// ParseBand parses a tolerance band string such as "0.01425-0.0165".
func ParseBand(s string) (lower, upper float64, err error) {
	return search.ParseBand(s)
}

// Reporter receives progress events during compression. See the reporter
// package for the ready-made terminal, JSON, and composite implementations.
type Reporter = reporter.Reporter

// Compressor is the main entry point for image re-encoding.
type Compressor struct {
	config *config.Config
}

// Result contains the result of a single file re-encode.
type Result struct {
	OutputFile           string
	OriginalSize         uint64
	EncodedSize          uint64
	SizeReductionPercent float64
	Quality              int
	Score                float64
	Converged            bool
	Iterations           int
	ValidationPassed     bool
}

// BatchResult contains the result of a batch re-encode.
type BatchResult struct {
	Results               []Result
	SuccessfulCount       int
	TotalFiles            int
	TotalSizeReduction    float64
	ValidationPassedCount int
}

// Option configures the compressor.
type Option func(*config.Config)

// New creates a new Compressor with the given options.
func New(opts ...Option) (*Compressor, error) {
	cfg := config.NewConfig(".", ".")

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Compressor{config: cfg}, nil
}

// WithEncoder selects the re-encoder variant. The choice is made once and
// holds for every file the compressor processes.
func WithEncoder(kind EncoderKind) Option {
	return func(c *config.Config) {
		c.Encoder = kind
	}
}

// WithBand sets the tolerance band for dissimilarity scores. The band is
// half-open: lower is accepted, upper is not.
func WithBand(lower, upper float64) Option {
	return func(c *config.Config) {
		c.BandLower = lower
		c.BandUpper = upper
	}
}

// WithInitialQuality sets the quality level of the first probe.
func WithInitialQuality(quality int) Option {
	return func(c *config.Config) {
		c.InitialQuality = quality
	}
}

// WithInitialStep sets the starting magnitude of quality adjustments.
func WithInitialStep(step int) Option {
	return func(c *config.Config) {
		c.InitialStep = step
	}
}

// WithMaxIterations sets the probe budget per search.
func WithMaxIterations(n int) Option {
	return func(c *config.Config) {
		c.MaxIterations = n
	}
}

// WithVerbose enables debug-level detail in run logs.
func WithVerbose() Option {
	return func(c *config.Config) {
		c.Verbose = true
	}
}

// CompressFile re-encodes a single image file into outputDir.
func (c *Compressor) CompressFile(ctx context.Context, input, outputDir string) (*Result, error) {
	return c.CompressFileWithReporter(ctx, input, outputDir, nil)
}

// CompressFileWithReporter re-encodes a single image file using a custom
// Reporter for progress events. A nil reporter discards all events.
func (c *Compressor) CompressFileWithReporter(ctx context.Context, input, outputDir string, rep Reporter) (*Result, error) {
	cfg := *c.config
	cfg.OutputDir = outputDir

	if err := util.EnsureDirectory(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if rep == nil {
		rep = reporter.NullReporter{}
	}

	results, err := processing.ProcessImages(ctx, &cfg, []string{input}, "", rep)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no files were processed")
	}

	return fileResult(input, outputDir, results[0]), nil
}

// CompressBatch re-encodes multiple image files. When some files fail, the
// returned BatchResult covers the files that succeeded and the error is
// non-nil.
func (c *Compressor) CompressBatch(ctx context.Context, inputs []string, outputDir string, rep Reporter) (*BatchResult, error) {
	cfg := *c.config
	cfg.OutputDir = outputDir

	if err := util.EnsureDirectory(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if rep == nil {
		rep = reporter.NullReporter{}
	}

	results, err := processing.ProcessImages(ctx, &cfg, inputs, "", rep)

	batch := &BatchResult{
		TotalFiles: len(inputs),
	}

	var totalInputSize, totalOutputSize uint64
	for _, r := range results {
		batch.Results = append(batch.Results, *fileResult(r.Filename, outputDir, r))
		batch.SuccessfulCount++
		totalInputSize += r.InputSize
		totalOutputSize += r.OutputSize
		if r.ValidationPassed {
			batch.ValidationPassedCount++
		}
	}

	batch.TotalSizeReduction = util.CalculateSizeReduction(totalInputSize, totalOutputSize)

	return batch, err
}

// FindImages finds image files in a directory.
func FindImages(dir string) ([]string, error) {
	return discovery.FindImageFiles(dir)
}

func fileResult(input, outputDir string, r processing.EncodeResult) *Result {
	return &Result{
		OutputFile:           util.ResolveOutputPath(input, outputDir, ""),
		OriginalSize:         r.InputSize,
		EncodedSize:          r.OutputSize,
		SizeReductionPercent: util.CalculateSizeReduction(r.InputSize, r.OutputSize),
		Quality:              r.Quality,
		Score:                r.Score,
		Converged:            r.Outcome == search.Converged,
		Iterations:           r.Iterations,
		ValidationPassed:     r.ValidationPassed,
	}
}
