// Package colour provides CIELAB colour space conversion.
package colour

import "math"

// D65 reference white point.
const (
	xn = 0.95047
	yn = 1.00000
	zn = 1.08883
)

// delta is 6/29, the breakpoint of the CIELAB nonlinearity.
const labDelta = 6.0 / 29.0

// RGBToLab converts an 8-bit RGB colour to CIELAB under D65 illumination.
func RGBToLab(rgb RGB) Lab {
	r := ToLinear(rgb.R)
	g := ToLinear(rgb.G)
	b := ToLinear(rgb.B)

	// Linear sRGB to XYZ (D65).
	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	fx := labF(x / xn)
	fy := labF(y / yn)
	fz := labF(z / zn)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToRGB converts a CIELAB colour back to 8-bit RGB, clamping channels
// that fall outside the sRGB gamut.
func LabToRGB(lab Lab) RGB {
	fy := (lab.L + 16) / 116
	fx := fy + lab.A/500
	fz := fy - lab.B/200

	x := xn * labFInv(fx)
	y := yn * labFInv(fy)
	z := zn * labFInv(fz)

	// XYZ to linear sRGB (D65).
	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	b := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return RGB{
		R: fromLinear(r),
		G: fromLinear(g),
		B: fromLinear(b),
	}
}

// labF is the CIELAB nonlinearity, piecewise at (6/29)^3.
func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

// labFInv is the inverse of labF, piecewise at 6/29.
func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}

// fromLinear encodes a linear-light value back to an 8-bit sRGB channel,
// clamping to [0, 255].
func fromLinear(c float64) uint8 {
	var v float64
	if c <= 0.0031308 {
		v = c * 12.92
	} else {
		v = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
