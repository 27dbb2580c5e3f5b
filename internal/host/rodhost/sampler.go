package rodhost

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/go-rod/rod/lib/proto"

	"github.com/readwell/readwell/internal/colour"
)

// Sampler reads rendered pixels from a captured viewport image. It gives
// audits a ground truth to compare resolved backgrounds against: the
// resolver works from style data, the sampler from actual raster output.
type Sampler struct {
	img image.Image
}

// NewSampler decodes a captured image. JPEG, PNG, and WebP are accepted.
func NewSampler(data []byte) (*Sampler, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rodhost: decode screenshot: %w", err)
	}
	return &Sampler{img: img}, nil
}

// Capture screenshots the current viewport and returns a sampler over it.
func (h *Host) Capture(ctx context.Context) (*Sampler, error) {
	data, err := h.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("rodhost: capture screenshot: %w", err)
	}
	return NewSampler(data)
}

// At returns the rendered colour at a viewport point. The second return
// is false when the point lies outside the captured area.
func (s *Sampler) At(x, y float64) (colour.RGB, bool) {
	bounds := s.img.Bounds()
	px := bounds.Min.X + int(x)
	py := bounds.Min.Y + int(y)
	if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
		return colour.RGB{}, false
	}
	return colour.ToRGB(s.img.At(px, py)), true
}

// Size returns the captured area in pixels.
func (s *Sampler) Size() (width, height int) {
	bounds := s.img.Bounds()
	return bounds.Dx(), bounds.Dy()
}
