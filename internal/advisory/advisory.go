// Package advisory integrates the optional readability oracle.
//
// The oracle judges whether an element's *original* colour pairing is
// already comfortable to read. A confident "comfortable" verdict vetoes a
// correction; the oracle can never propose colours or cause a correction.
// Every failure mode (timeout, transport error, malformed response) is
// fail-open: the engine falls back to the deterministic WCAG/CIELAB logic
// alone.
package advisory

import (
	"context"

	"github.com/readwell/readwell/internal/colour"
)

// Request is the element context presented to the oracle.
type Request struct {
	Foreground  colour.RGB `json:"-"`
	Background  colour.RGB `json:"-"`
	Contrast    float64    `json:"contrast_ratio"`
	ElementType string     `json:"element_type"`
	Role        string     `json:"role,omitempty"`
	TextLength  int        `json:"text_length,omitempty"`
	FontSize    float64    `json:"font_size"`
	FontWeight  int        `json:"font_weight"`
	UserScale   float64    `json:"user_scale"`
}

// Decision is the oracle's judgement of the original pairing.
type Decision struct {
	Comfortable bool    `json:"comfortable"`
	Confidence  float64 `json:"confidence"`
}

// Gate is a readability oracle. Judge returns the oracle's opinion of the
// original pairing; an error means the oracle has no opinion and the caller
// proceeds on the maths alone.
type Gate interface {
	Judge(ctx context.Context, req Request) (Decision, error)
}

// Veto reports whether a decision suppresses the correction at the given
// confidence threshold.
func Veto(d Decision, threshold float64) bool {
	return d.Comfortable && d.Confidence >= threshold
}

// Noop is the default Gate: it never has an opinion, so the engine always
// proceeds on the deterministic maths.
type Noop struct{}

// Judge always returns an indifferent decision.
func (Noop) Judge(context.Context, Request) (Decision, error) {
	return Decision{}, nil
}

var _ Gate = Noop{}
