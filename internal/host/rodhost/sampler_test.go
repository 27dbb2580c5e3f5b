package rodhost

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/readwell/readwell/internal/colour"
)

// encodeTestImage builds a 4x4 PNG with one red pixel at (2, 1) on white.
func encodeTestImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	img.Set(2, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSamplerAt(t *testing.T) {
	sampler, err := NewSampler(encodeTestImage(t))
	if err != nil {
		t.Fatalf("NewSampler() error: %v", err)
	}

	got, ok := sampler.At(2, 1)
	if !ok {
		t.Fatal("At(2, 1) reported out of bounds")
	}
	if got != (colour.RGB{R: 255}) {
		t.Errorf("At(2, 1) = %v, want rgb(255, 0, 0)", got)
	}

	got, ok = sampler.At(0, 0)
	if !ok || got != (colour.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("At(0, 0) = %v, %v, want white, true", got, ok)
	}
}

func TestSamplerAtOutOfBounds(t *testing.T) {
	sampler, err := NewSampler(encodeTestImage(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range [][2]float64{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if _, ok := sampler.At(pt[0], pt[1]); ok {
			t.Errorf("At(%v, %v) = true, want out of bounds", pt[0], pt[1])
		}
	}
}

func TestSamplerSize(t *testing.T) {
	sampler, err := NewSampler(encodeTestImage(t))
	if err != nil {
		t.Fatal(err)
	}
	w, h := sampler.Size()
	if w != 4 || h != 4 {
		t.Errorf("Size() = %dx%d, want 4x4", w, h)
	}
}

func TestNewSamplerRejectsGarbage(t *testing.T) {
	if _, err := NewSampler([]byte("not an image")); err == nil {
		t.Error("NewSampler() = nil error for garbage input")
	}
}
