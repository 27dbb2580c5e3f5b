// Package colour provides the colour math used by the contrast engine:
// WCAG relative luminance and contrast ratio, HSL and CIELAB conversions,
// the CIEDE2000 colour difference, source-over alpha compositing, and CSS
// colour string parsing.
//
// All functions are pure and perform intermediate arithmetic in float64.
package colour

import (
	"fmt"
	"image/color"
)

// RGB represents an opaque colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Layer is a paint layer: an RGB colour with a coverage alpha in [0, 1].
// Alpha 0 means the layer paints nothing, 1 means fully opaque.
type Layer struct {
	Colour RGB     `json:"colour"`
	Alpha  float64 `json:"alpha"`
}

// Opaque wraps an RGB colour as a fully opaque layer.
func Opaque(rgb RGB) Layer {
	return Layer{Colour: rgb, Alpha: 1}
}

// IsOpaque reports whether the layer fully covers whatever is behind it.
func (l Layer) IsOpaque() bool {
	return l.Alpha >= 1
}

// Lab represents a colour in the CIELAB colour space.
// L is lightness in [0, 100]; A and B are chromaticity axes,
// roughly in [-128, 127] for colours reachable from 8-bit RGB.
type Lab struct {
	L float64
	A float64
	B float64
}

// ToRGB converts a standard library colour to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// RGBToColor converts an RGB value to a color.Color (RGBA).
func RGBToColor(rgb RGB) color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}
