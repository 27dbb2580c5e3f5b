// Package correct searches for a replacement foreground colour that meets a
// target WCAG contrast ratio with minimal perceptual change.
//
// The primary strategy walks the CIELAB lightness axis away from the
// background's luminance in fixed 1-unit steps, holding the hue and chroma
// direction of the original colour, and picks the passing candidate with
// the smallest CIEDE2000 distance from the original. When no L* in [0, 100]
// satisfies the target, an HSL lightness walk with hue and saturation held
// constant is tried. When both ranges are exhausted the correction is
// infeasible, which is a value, not an error.
//
// For fixed inputs the search is deterministic: step sizes and direction
// are part of the contract.
package correct

import (
	"math"

	"github.com/readwell/readwell/internal/colour"
)

// labStep is the L* increment of the primary search.
const labStep = 1.0

// hslStep is the lightness increment of the fallback search.
const hslStep = 0.02

// Outcome classifies the corrector's answer.
type Outcome int

const (
	// OutcomeCompliant means the original pairing already meets the target;
	// nothing to do.
	OutcomeCompliant Outcome = iota

	// OutcomeVetoed means the advisory gate judged the original pairing
	// comfortable; the original colours are preserved.
	OutcomeVetoed

	// OutcomeCorrected means a replacement foreground was found.
	OutcomeCorrected

	// OutcomeInfeasible means no colour within the search ranges satisfies
	// the target against this background.
	OutcomeInfeasible
)

// String returns the outcome name for logs and reports.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompliant:
		return "compliant"
	case OutcomeVetoed:
		return "vetoed"
	case OutcomeCorrected:
		return "corrected"
	case OutcomeInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Result carries a successful correction.
type Result struct {
	Colour   colour.RGB
	Contrast float64
}

// Correct computes a replacement foreground for fg against bg meeting
// target, a WCAG ratio in [1, 21]. vetoed is the advisory gate's judgement
// of the original pairing; when set, the corrector leaves the colours
// untouched. The Result is meaningful only for OutcomeCorrected.
func Correct(fg, bg colour.RGB, target float64, vetoed bool) (Result, Outcome) {
	current := colour.ContrastRatio(fg, bg)
	if current >= target {
		return Result{Colour: fg, Contrast: current}, OutcomeCompliant
	}
	if vetoed {
		return Result{Colour: fg, Contrast: current}, OutcomeVetoed
	}

	// Light-dominant backgrounds push the foreground darker, dark ones
	// push it lighter.
	dir := 1.0
	if colour.RelativeLuminance(bg) >= colour.RelativeLuminance(fg) {
		dir = -1.0
	}

	if res, ok := searchLab(fg, bg, target, dir); ok {
		return res, OutcomeCorrected
	}
	if res, ok := searchHSL(fg, bg, target, dir); ok {
		return res, OutcomeCorrected
	}
	return Result{}, OutcomeInfeasible
}

// searchLab walks L* in fixed steps in the contrast-improving direction and
// returns the passing candidate closest to the original in CIEDE2000 terms.
func searchLab(fg, bg colour.RGB, target, dir float64) (Result, bool) {
	origin := colour.RGBToLab(fg)

	best := Result{}
	bestDist := math.Inf(1)
	found := false

	l := origin.L
	for {
		l += dir * labStep
		if l < 0 {
			l = 0
		}
		if l > 100 {
			l = 100
		}

		candidate := colour.LabToRGB(colour.Lab{L: l, A: origin.A, B: origin.B})
		ratio := colour.ContrastRatio(candidate, bg)
		if ratio >= target {
			// Distance is measured against the quantised candidate, the
			// colour that will actually be painted.
			dist := colour.DeltaE2000(origin, colour.RGBToLab(candidate))
			if dist < bestDist {
				best = Result{Colour: candidate, Contrast: ratio}
				bestDist = dist
				found = true
			}
		}

		if l == 0 || l == 100 {
			break
		}
	}

	return best, found
}

// searchHSL walks HSL lightness in small fixed steps with hue and
// saturation held constant, returning the first candidate that meets the
// target.
func searchHSL(fg, bg colour.RGB, target, dir float64) (Result, bool) {
	h, s, l := colour.RGBToHSL(fg)

	for {
		l += dir * hslStep
		if l < 0 {
			l = 0
		}
		if l > 1 {
			l = 1
		}

		candidate := colour.HSLToRGB(h, s, l)
		ratio := colour.ContrastRatio(candidate, bg)
		if ratio >= target {
			return Result{Colour: candidate, Contrast: ratio}, true
		}

		if l == 0 || l == 1 {
			return Result{}, false
		}
	}
}
