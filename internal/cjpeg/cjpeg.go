// Package cjpeg runs the mozjpeg cjpeg binary to produce JPEG output at an
// explicit quality level.
package cjpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pixelband/jpegfit/internal/errors"
	"github.com/pixelband/jpegfit/internal/raster"
)

const binaryName = "cjpeg"

// Encoder re-encodes images by piping uncompressed BMP data through cjpeg.
// cjpeg cannot consume JPEG input, so the source is decoded first.
type Encoder struct{}

// NewEncoder creates a cjpeg-backed encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's tool name.
func (e *Encoder) Name() string {
	return binaryName
}

// Check verifies the cjpeg binary is available.
func (e *Encoder) Check() error {
	if _, err := exec.LookPath(binaryName); err != nil {
		return errors.NewCommandStartError(binaryName, err)
	}
	return nil
}

// BuildArgs returns the cjpeg arguments for a quality level.
func BuildArgs(quality int) []string {
	return []string{"-quality", strconv.Itoa(quality)}
}

// Encode re-encodes source image bytes at the given quality level.
func (e *Encoder) Encode(ctx context.Context, source []byte, quality int) ([]byte, error) {
	img, err := raster.Decode(source)
	if err != nil {
		return nil, errors.NewEncodingError("failed to decode source image", err)
	}

	bmp, err := raster.EncodeBMP(img)
	if err != nil {
		return nil, errors.NewEncodingError("failed to prepare encoder input", err)
	}

	cmd := exec.CommandContext(ctx, binaryName, BuildArgs(quality)...)
	cmd.Stdin = bytes.NewReader(bmp)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.NewEncodingError(
			fmt.Sprintf("%s failed at quality %d", binaryName, quality),
			errors.WrapExecError(binaryName, err, strings.TrimSpace(stderr.String())))
	}

	if stdout.Len() == 0 {
		return nil, errors.NewEncodingError(
			fmt.Sprintf("%s produced no output at quality %d", binaryName, quality), nil)
	}

	return stdout.Bytes(), nil
}
