// Package colour provides source-over alpha compositing.
package colour

import "math"

// CompositeOver blends a source layer over a destination layer using the
// standard "source over destination" operator:
//
//	outA = sa + da*(1-sa)
//	outC = (sc*sa + dc*da*(1-sa)) / outA
//
// When both layers are fully transparent the result is a fully transparent
// black layer.
func CompositeOver(src, dst Layer) Layer {
	sa := clamp01(src.Alpha)
	da := clamp01(dst.Alpha)

	outA := sa + da*(1-sa)
	if outA == 0 {
		return Layer{}
	}

	blend := func(sc, dc uint8) uint8 {
		c := (float64(sc)*sa + float64(dc)*da*(1-sa)) / outA
		return uint8(math.Round(c))
	}

	return Layer{
		Colour: RGB{
			R: blend(src.Colour.R, dst.Colour.R),
			G: blend(src.Colour.G, dst.Colour.G),
			B: blend(src.Colour.B, dst.Colour.B),
		},
		Alpha: outA,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
