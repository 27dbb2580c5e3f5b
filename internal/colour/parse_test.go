// Package colour provides colour math for the contrast engine.
package colour

import (
	"errors"
	"math"
	"testing"
)

func TestParseCSS(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Layer
		wantErr bool
	}{
		{
			name:  "six digit hex",
			input: "#1a2b3c",
			want:  Opaque(RGB{26, 43, 60}),
		},
		{
			name:  "three digit hex",
			input: "#fff",
			want:  Opaque(RGB{255, 255, 255}),
		},
		{
			name:  "rgb function",
			input: "rgb(255, 128, 0)",
			want:  Opaque(RGB{255, 128, 0}),
		},
		{
			name:  "rgba function",
			input: "rgba(10, 20, 30, 0.5)",
			want:  Layer{Colour: RGB{10, 20, 30}, Alpha: 0.5},
		},
		{
			name:  "space separated",
			input: "rgb(10 20 30)",
			want:  Opaque(RGB{10, 20, 30}),
		},
		{
			name:  "uppercase with whitespace",
			input: "  RGB(1, 2, 3)  ",
			want:  Opaque(RGB{1, 2, 3}),
		},
		{
			name:    "garbage",
			input:   "not-a-colour",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "channel out of range",
			input:   "rgb(300, 0, 0)",
			wantErr: true,
		},
		{
			name:    "unresolved keyword",
			input:   "currentcolor",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSS(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCSS(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCSS(%q) returned error: %v", tt.input, err)
			}
			if got.Colour != tt.want.Colour || math.Abs(got.Alpha-tt.want.Alpha) > 1e-9 {
				t.Errorf("ParseCSS(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCSSNoPaint(t *testing.T) {
	for _, input := range []string{"transparent", "rgba(0, 0, 0, 0)"} {
		_, err := ParseCSS(input)
		if !errors.Is(err, ErrNoPaint) {
			t.Errorf("ParseCSS(%q) error = %v, want ErrNoPaint", input, err)
		}
	}
}

func TestCompositeOver(t *testing.T) {
	tests := []struct {
		name string
		src  Layer
		dst  Layer
		want Layer
	}{
		{
			name: "opaque source hides destination",
			src:  Opaque(RGB{10, 20, 30}),
			dst:  Opaque(RGB{200, 200, 200}),
			want: Opaque(RGB{10, 20, 30}),
		},
		{
			name: "half black over white",
			src:  Layer{Colour: RGB{0, 0, 0}, Alpha: 0.5},
			dst:  Opaque(RGB{255, 255, 255}),
			want: Opaque(RGB{128, 128, 128}),
		},
		{
			name: "transparent source passes destination through",
			src:  Layer{},
			dst:  Opaque(RGB{1, 2, 3}),
			want: Opaque(RGB{1, 2, 3}),
		},
		{
			name: "both transparent",
			src:  Layer{},
			dst:  Layer{},
			want: Layer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompositeOver(tt.src, tt.dst)
			if got.Colour != tt.want.Colour || math.Abs(got.Alpha-tt.want.Alpha) > 1e-9 {
				t.Errorf("CompositeOver(%+v, %+v) = %+v, want %+v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}
