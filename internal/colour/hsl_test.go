// Package colour provides colour math for the contrast engine.
package colour

import (
	"math"
	"testing"
)

func TestRGBToHSLKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		rgb   RGB
		wantH float64
		wantS float64
		wantL float64
	}{
		{
			name:  "pure red",
			rgb:   RGB{255, 0, 0},
			wantH: 0, wantS: 1, wantL: 0.5,
		},
		{
			name:  "pure green",
			rgb:   RGB{0, 255, 0},
			wantH: 120, wantS: 1, wantL: 0.5,
		},
		{
			name:  "pure blue",
			rgb:   RGB{0, 0, 255},
			wantH: 240, wantS: 1, wantL: 0.5,
		},
		{
			name:  "white",
			rgb:   RGB{255, 255, 255},
			wantH: 0, wantS: 0, wantL: 1,
		},
		{
			name:  "mid grey",
			rgb:   RGB{128, 128, 128},
			wantH: 0, wantS: 0, wantL: 0.50196,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := RGBToHSL(tt.rgb)
			if math.Abs(h-tt.wantH) > 0.01 || math.Abs(s-tt.wantS) > 0.01 || math.Abs(l-tt.wantL) > 0.01 {
				t.Errorf("RGBToHSL(%v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.rgb, h, s, l, tt.wantH, tt.wantS, tt.wantL)
			}
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	colours := []RGB{
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{255, 255, 255},
		{0, 0, 0},
		{128, 128, 128},
		{200, 30, 90},
		{17, 120, 210},
	}

	for _, in := range colours {
		h, s, l := RGBToHSL(in)
		out := HSLToRGB(h, s, l)
		if diff8(in.R, out.R) > 1 || diff8(in.G, out.G) > 1 || diff8(in.B, out.B) > 1 {
			t.Errorf("HSL round trip %v -> %v drifted more than 1 unit", in, out)
		}
	}
}
