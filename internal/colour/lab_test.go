// Package colour provides colour math for the contrast engine.
package colour

import (
	"math"
	"testing"
)

func TestRGBToLabKnownValues(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want Lab
	}{
		{
			name: "white",
			rgb:  RGB{255, 255, 255},
			want: Lab{L: 100, A: 0, B: 0},
		},
		{
			name: "black",
			rgb:  RGB{0, 0, 0},
			want: Lab{L: 0, A: 0, B: 0},
		},
		{
			name: "mid grey",
			rgb:  RGB{119, 119, 119},
			want: Lab{L: 50.03, A: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToLab(tt.rgb)
			if math.Abs(got.L-tt.want.L) > 0.05 ||
				math.Abs(got.A-tt.want.A) > 0.05 ||
				math.Abs(got.B-tt.want.B) > 0.05 {
				t.Errorf("RGBToLab(%v) = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestLabRoundTrip(t *testing.T) {
	// Sample the RGB cube on a coarse grid. A colour converted to CIELAB
	// and back must land on the same 8-bit triple: the conversion error is
	// far below half a quantisation step.
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				in := RGB{uint8(r), uint8(g), uint8(b)}
				out := LabToRGB(RGBToLab(in))
				if diff8(in.R, out.R) > 2 || diff8(in.G, out.G) > 2 || diff8(in.B, out.B) > 2 {
					t.Fatalf("round trip %v -> %v drifted more than 2 units", in, out)
				}
			}
		}
	}
}

func TestLabRoundTripStable(t *testing.T) {
	// Once quantised, a second trip through CIELAB must be a fixed point.
	colours := []RGB{
		{255, 255, 255},
		{0, 0, 0},
		{128, 128, 128},
		{200, 30, 90},
		{12, 200, 97},
		{3, 7, 250},
	}

	for _, c := range colours {
		lab1 := RGBToLab(c)
		rgb1 := LabToRGB(lab1)
		lab2 := RGBToLab(rgb1)
		if math.Abs(lab1.L-lab2.L) > 1e-3 ||
			math.Abs(lab1.A-lab2.A) > 1e-3 ||
			math.Abs(lab1.B-lab2.B) > 1e-3 {
			t.Errorf("round trip of %v did not stabilise: %+v -> %+v", c, lab1, lab2)
		}
	}
}

func TestLabToRGBClampsOutOfGamut(t *testing.T) {
	// L*=50 with extreme chroma is outside the sRGB gamut; the conversion
	// must clamp rather than wrap.
	got := LabToRGB(Lab{L: 50, A: 120, B: -120})
	_ = got // must not panic; channels are clamped by construction

	bright := LabToRGB(Lab{L: 200, A: 0, B: 0})
	if bright != (RGB{255, 255, 255}) {
		t.Errorf("LabToRGB(L=200) = %v, want white", bright)
	}
	dark := LabToRGB(Lab{L: -50, A: 0, B: 0})
	if dark != (RGB{0, 0, 0}) {
		t.Errorf("LabToRGB(L=-50) = %v, want black", dark)
	}
}

func diff8(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
