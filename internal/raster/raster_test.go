package raster

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize(t *testing.T) {
	data := encodeTestJPEG(t, 8, 6)

	r, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}

	if r.Width != 8 || r.Height != 6 {
		t.Errorf("Normalize() dimensions = %dx%d, want 8x6", r.Width, r.Height)
	}

	if len(r.PNG) == 0 {
		t.Fatal("Normalize() produced empty PNG data")
	}

	img, err := imaging.Decode(bytes.NewReader(r.PNG))
	if err != nil {
		t.Fatalf("normalized PNG does not decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("normalized PNG dimensions = %dx%d, want 8x6",
			img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("not an image")); err == nil {
		t.Error("Normalize() error = nil, want error")
	}
}

func TestNormalizeRejectsEmpty(t *testing.T) {
	if _, err := Normalize(nil); err == nil {
		t.Error("Normalize() error = nil, want error")
	}
}

func TestDecode(t *testing.T) {
	data := encodeTestJPEG(t, 5, 3)

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Errorf("Decode() dimensions = %dx%d, want 5x3", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestEncodeBMP(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	data, err := EncodeBMP(img)
	if err != nil {
		t.Fatalf("EncodeBMP() error = %v, want nil", err)
	}
	if len(data) == 0 {
		t.Fatal("EncodeBMP() produced empty data")
	}

	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("BMP output does not decode: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 4 {
		t.Errorf("BMP dimensions = %dx%d, want 4x4",
			decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}
