// Package colour provides colour math for the contrast engine.
package colour

import (
	"math"
	"testing"
)

func TestDeltaE2000Identity(t *testing.T) {
	labs := []Lab{
		{L: 0, A: 0, B: 0},
		{L: 100, A: 0, B: 0},
		{L: 50, A: 2.6772, B: -79.7751},
		{L: 61.2, A: -34.1, B: 13.9},
	}

	for _, l := range labs {
		if got := DeltaE2000(l, l); got != 0 {
			t.Errorf("DeltaE2000(%+v, %+v) = %v, want 0", l, l, got)
		}
	}
}

func TestDeltaE2000Symmetric(t *testing.T) {
	a := Lab{L: 50, A: 2.6772, B: -79.7751}
	b := Lab{L: 73, A: 25, B: -18}

	ab := DeltaE2000(a, b)
	ba := DeltaE2000(b, a)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("DeltaE2000 not symmetric: %v vs %v", ab, ba)
	}
}

// Reference pairs from Sharma, Wu & Dalal, "The CIEDE2000 Color-Difference
// Formula: Implementation Notes, Supplementary Test Data, and Mathematical
// Observations" (2005), Table 1.
func TestDeltaE2000ReferenceData(t *testing.T) {
	tests := []struct {
		name string
		a, b Lab
		want float64
	}{
		{
			name: "pair 1",
			a:    Lab{L: 50.0000, A: 2.6772, B: -79.7751},
			b:    Lab{L: 50.0000, A: 0.0000, B: -82.7485},
			want: 2.0425,
		},
		{
			name: "pair 2",
			a:    Lab{L: 50.0000, A: 3.1571, B: -77.2803},
			b:    Lab{L: 50.0000, A: 0.0000, B: -82.7485},
			want: 2.8615,
		},
		{
			name: "pair 3",
			a:    Lab{L: 50.0000, A: 2.8361, B: -74.0200},
			b:    Lab{L: 50.0000, A: 0.0000, B: -82.7485},
			want: 3.4412,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeltaE2000(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("DeltaE2000(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDeltaE2000LightnessOnly(t *testing.T) {
	// Two greys differ only along L*; the difference must grow with the
	// lightness gap and stay strictly positive.
	base := Lab{L: 40, A: 0, B: 0}
	prev := 0.0
	for dl := 1.0; dl <= 40; dl += 5 {
		d := DeltaE2000(base, Lab{L: base.L + dl, A: 0, B: 0})
		if d <= prev {
			t.Fatalf("DeltaE2000 not increasing along L*: dl=%v d=%v prev=%v", dl, d, prev)
		}
		prev = d
	}
}
