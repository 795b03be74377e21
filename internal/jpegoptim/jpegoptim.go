// Package jpegoptim runs the jpegoptim binary to re-encode JPEG data down
// to an explicit maximum quality level.
package jpegoptim

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pixelband/jpegfit/internal/errors"
)

const binaryName = "jpegoptim"

// Encoder re-encodes images by piping JPEG data through jpegoptim. Unlike
// cjpeg it consumes JPEG input directly, so no decode round trip is needed.
type Encoder struct{}

// NewEncoder creates a jpegoptim-backed encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's tool name.
func (e *Encoder) Name() string {
	return binaryName
}

// Check verifies the jpegoptim binary is available.
func (e *Encoder) Check() error {
	if _, err := exec.LookPath(binaryName); err != nil {
		return errors.NewCommandStartError(binaryName, err)
	}
	return nil
}

// BuildArgs returns the jpegoptim arguments for a quality level. The force
// flag keeps every probe a real re-encode even when the result grows.
func BuildArgs(quality int) []string {
	return []string{
		"--stdin",
		"--stdout",
		"--quiet",
		"--force",
		"--max=" + strconv.Itoa(quality),
	}
}

// Encode re-encodes source JPEG bytes at the given quality level.
func (e *Encoder) Encode(ctx context.Context, source []byte, quality int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binaryName, BuildArgs(quality)...)
	cmd.Stdin = bytes.NewReader(source)

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
