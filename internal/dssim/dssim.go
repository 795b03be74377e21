// Package dssim measures perceptual dissimilarity between two images using
// the dssim command line tool. Scores start at 0.0 for identical images and
// grow as the images diverge.
package dssim

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pixelband/jpegfit/internal/errors"
	"github.com/pixelband/jpegfit/internal/raster"
	"github.com/pixelband/jpegfit/internal/util"
)

const binaryName = "dssim"

// Scorer shells out to dssim. Rasters are written as ephemeral PNG files
// because dssim only reads from paths.
type Scorer struct {
	// TempDir is where the ephemeral PNG pairs are written.
	TempDir string
}

// NewScorer creates a dssim-backed scorer using the system temp directory.
func NewScorer() *Scorer {
	return &Scorer{TempDir: os.TempDir()}
}

// Name returns the scorer's tool name.
func (s *Scorer) Name() string {
	return binaryName
}

// Check verifies the dssim binary is available.
func (s *Scorer) Check() error {
	if _, err := exec.LookPath(binaryName); err != nil {
		return errors.NewCommandStartError(binaryName, err)
	}
	return nil
}

// Score measures the dissimilarity of candidate against reference.
func (s *Scorer) Score(ctx context.Context, reference, candidate raster.Raster) (float64, error) {
	if reference.Width != candidate.Width || reference.Height != candidate.Height {
		return 0, errors.NewScoringError(
			fmt.Sprintf("image dimensions differ: %dx%d vs %dx%d",
				reference.Width, reference.Height, candidate.Width, candidate.Height), nil)
	}

	refPath, cleanupRef, err := s.writeTempPNG("jpegfit_ref", reference.PNG)
	if err != nil {
		return 0, err
	}
	defer cleanupRef()

	candPath, cleanupCand, err := s.writeTempPNG("jpegfit_cand", candidate.PNG)
	if err != nil {
		return 0, err
	}
	defer cleanupCand()

	cmd := exec.CommandContext(ctx, binaryName, refPath, candPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, errors.NewScoringError("dssim failed",
			errors.WrapExecError(binaryName, err, strings.TrimSpace(stderr.String())))
	}

	score, err := parseScore(stdout.String())
	if err != nil {
		return 0, errors.NewScoringError("failed to parse dssim output", err)
	}

	return score, nil
}

// writeTempPNG writes data to a unique PNG file and returns its path with
// a cleanup func.
func (s *Scorer) writeTempPNG(prefix string, data []byte) (string, func(), error) {
	tmp, err := util.CreateTempFile(s.TempDir, prefix, "png")
	if err != nil {
		return "", nil, errors.NewScoringError("failed to create temp file", err)
	}

	if err := os.WriteFile(tmp.Path(), data, 0644); err != nil {
		_ = tmp.Cleanup()
		return "", nil, errors.NewScoringError("failed to write temp file", err)
	}

	return tmp.Path(), func() { _ = tmp.Cleanup() }, nil
}

// parseScore extracts the score from dssim output. Each output line has the
// form "<score>\t<path>"; only the first line's score matters since we
// compare a single pair.
func parseScore(output string) (float64, error) {
	line := output
	if idx := strings.IndexByte(output, '\n'); idx >= 0 {
		line = output[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty dssim output")
	}

	score, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed dssim output line %q: %w", line, err)
	}

	return score, nil
}
