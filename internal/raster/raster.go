// Package raster decodes compressed images into a canonical lossless form
// for pixel comparison.
package raster

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Raster is a decoded image re-encoded losslessly as PNG. The reference and
// every candidate pass through the same canonical form so the scorer always
// compares like with like, regardless of which codec produced the bytes.
type Raster struct {
	// PNG is the lossless encoding handed to the scorer.
	PNG []byte

	// Width and Height are the pixel dimensions.
	Width  int
	Height int
}

// Decode parses compressed image bytes. EXIF orientation is deliberately
// not applied: the encoder consumes the stored pixels, so the comparison
// must see them the same way.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Normalize decodes compressed image bytes into canonical form.
func Normalize(data []byte) (Raster, error) {
	img, err := Decode(data)
	if err != nil {
		return Raster{}, err
	}
	return FromImage(img)
}

// FromImage converts an already decoded image into canonical form.
func FromImage(img image.Image) (Raster, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return Raster{}, fmt.Errorf("failed to encode PNG: %w", err)
	}

	bounds := img.Bounds()
	return Raster{
		PNG:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// EncodeBMP re-encodes a decoded image as uncompressed BMP, the stdin
// format the cjpeg runner feeds to the encoder binary.
func EncodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.BMP); err != nil {
		return nil, fmt.Errorf("failed to encode BMP: %w", err)
	}
	return buf.Bytes(), nil
}
