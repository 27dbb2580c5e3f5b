// Package colour provides WCAG luminance and contrast calculations.
package colour

import "math"

// ToLinear decodes an 8-bit sRGB channel to its linear-light value in [0, 1].
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func ToLinear(channel uint8) float64 {
	c := float64(channel) / 255.0
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance calculates the relative luminance of a colour according
// to WCAG 2.0. Returns a value between 0 (darkest) and 1 (lightest).
func RelativeLuminance(rgb RGB) float64 {
	return 0.2126*ToLinear(rgb.R) + 0.7152*ToLinear(rgb.G) + 0.0722*ToLinear(rgb.B)
}

// ContrastRatio calculates the contrast ratio between two colours according
// to WCAG 2.0. Returns a value between 1 and 21, where 21 is maximum
// contrast (black vs white). Symmetric in its arguments and defined for any
// pair of colours.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := RelativeLuminance(c1)
	l2 := RelativeLuminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
