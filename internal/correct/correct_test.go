package correct

import (
	"testing"

	"github.com/readwell/readwell/internal/colour"
)

var (
	white = colour.RGB{R: 255, G: 255, B: 255}
	black = colour.RGB{R: 0, G: 0, B: 0}
	grey  = colour.RGB{R: 128, G: 128, B: 128}
)

func TestCorrectAlreadyCompliant(t *testing.T) {
	res, outcome := Correct(black, white, 7.0, false)
	if outcome != OutcomeCompliant {
		t.Fatalf("outcome = %v, want compliant", outcome)
	}
	if res.Colour != black {
		t.Errorf("compliant result changed the colour: %v", res.Colour)
	}
}

func TestCorrectGreyOnWhite(t *testing.T) {
	const target = 4.5

	res, outcome := Correct(grey, white, target, false)
	if outcome != OutcomeCorrected {
		t.Fatalf("outcome = %v, want corrected", outcome)
	}

	got := colour.ContrastRatio(res.Colour, white)
	if got < target-0.01 {
		t.Errorf("corrected contrast = %v, want >= %v", got, target)
	}
	if res.Contrast != got {
		t.Errorf("reported contrast %v does not match recomputed %v", res.Contrast, got)
	}

	// The correction must disturb the colour less than jumping to black.
	origin := colour.RGBToLab(grey)
	toCorrected := colour.DeltaE2000(origin, colour.RGBToLab(res.Colour))
	toBlack := colour.DeltaE2000(origin, colour.RGBToLab(black))
	if toCorrected >= toBlack {
		t.Errorf("deltaE to corrected (%v) not smaller than to black (%v)", toCorrected, toBlack)
	}
}

func TestCorrectInfeasibleTarget(t *testing.T) {
	// Mid grey cannot reach 21:1 against anything.
	midGrey := colour.RGB{R: 119, G: 119, B: 119}

	_, outcome := Correct(grey, midGrey, 21, false)
	if outcome != OutcomeInfeasible {
		t.Fatalf("outcome = %v, want infeasible", outcome)
	}
}

func TestCorrectVetoPreservesOriginal(t *testing.T) {
	lowContrast := colour.RGB{R: 200, G: 200, B: 200}

	res, outcome := Correct(lowContrast, white, 4.5, true)
	if outcome != OutcomeVetoed {
		t.Fatalf("outcome = %v, want vetoed", outcome)
	}
	if res.Colour != lowContrast {
		t.Errorf("vetoed result changed the colour: %v", res.Colour)
	}
}

func TestCorrectDirection(t *testing.T) {
	tests := []struct {
		name   string
		fg, bg colour.RGB
		target float64
	}{
		{
			name: "light background pushes darker",
			fg:     colour.RGB{R: 150, G: 150, B: 150},
			bg:     white,
			target: 4.5,
		},
		{
			name: "dark background pushes lighter",
			fg:     colour.RGB{R: 90, G: 90, B: 90},
			bg:     black,
			target: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, outcome := Correct(tt.fg, tt.bg, tt.target, false)
			if outcome != OutcomeCorrected {
				t.Fatalf("outcome = %v, want corrected", outcome)
			}

			origLum := colour.RelativeLuminance(tt.fg)
			newLum := colour.RelativeLuminance(res.Colour)
			bgLum := colour.RelativeLuminance(tt.bg)
			if bgLum >= origLum && newLum >= origLum {
				t.Errorf("foreground moved lighter against a light background")
			}
			if bgLum < origLum && newLum <= origLum {
				t.Errorf("foreground moved darker against a dark background")
			}
		})
	}
}

func TestCorrectDeterministic(t *testing.T) {
	fg := colour.RGB{R: 150, G: 90, B: 60}
	bg := colour.RGB{R: 240, G: 240, B: 235}

	first, outcome := Correct(fg, bg, 6.33, false)
	if outcome != OutcomeCorrected {
		t.Fatalf("outcome = %v, want corrected", outcome)
	}
	for i := 0; i < 5; i++ {
		res, _ := Correct(fg, bg, 6.33, false)
		if res != first {
			t.Fatalf("run %d returned %+v, first run returned %+v", i, res, first)
		}
	}
}

func TestCorrectPreservesHueDirection(t *testing.T) {
	// A saturated red on white keeps its hue while darkening.
	red := colour.RGB{R: 220, G: 80, B: 80}

	res, outcome := Correct(red, white, 4.5, false)
	if outcome != OutcomeCorrected {
		t.Fatalf("outcome = %v, want corrected", outcome)
	}

	origH, _, _ := colour.RGBToHSL(red)
	newH, _, _ := colour.RGBToHSL(res.Colour)
	diff := origH - newH
	if diff < 0 {
		diff = -diff
	}
	if diff > 180 {
		diff = 360 - diff
	}
	if diff > 15 {
		t.Errorf("hue drifted %v degrees, want stable hue", diff)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeCompliant, "compliant"},
		{OutcomeVetoed, "vetoed"},
		{OutcomeCorrected, "corrected"},
		{OutcomeInfeasible, "infeasible"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
