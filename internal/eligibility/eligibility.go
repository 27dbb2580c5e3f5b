// Package eligibility decides whether a text element is a valid correction
// candidate. The check is a pure predicate over the element's style
// snapshot, a point hit-test, and the processed marker; rejection is
// silent, never an error.
package eligibility

import (
	"context"

	"github.com/readwell/readwell/internal/host"
)

// Reason explains why an element was rejected.
type Reason string

const (
	// ReasonProcessed marks an element already corrected in this session.
	ReasonProcessed Reason = "processed"

	// ReasonOptOut marks an element opted out by itself or an ancestor.
	ReasonOptOut Reason = "opt-out"

	// ReasonInvisible marks an element with no visible pixels: zero-size
	// box, display:none, visibility:hidden, near-zero opacity, or no
	// paintable surface at its sample point.
	ReasonInvisible Reason = "invisible"

	// ReasonVideoSurface marks text sitting over a video or third-party
	// iframe surface whose rendered pixels cannot be verified.
	ReasonVideoSurface Reason = "video-surface"
)

// opacityEpsilon is the threshold under which an element counts as fully
// transparent.
const opacityEpsilon = 0.01

// Verdict is the outcome of an eligibility check.
type Verdict struct {
	Eligible bool
	Reason   Reason
}

func rejected(r Reason) Verdict {
	return Verdict{Reason: r}
}

// Check decides whether an element may be corrected. processed is the
// caller's at-most-once marker for this element.
func Check(ctx context.Context, h host.Host, el host.ElementID, style host.Style, processed bool) (Verdict, error) {
	if processed {
		return rejected(ReasonProcessed), nil
	}
	if style.OptOut {
		return rejected(ReasonOptOut), nil
	}
	if style.Bounds.Empty() ||
		style.Display == "none" ||
		style.Visibility == "hidden" ||
		style.Opacity <= opacityEpsilon {
		return rejected(ReasonInvisible), nil
	}

	x, y := style.Bounds.Center()
	surface, err := h.PointSurface(ctx, x, y, "")
	if err != nil {
		return Verdict{}, err
	}
	if surface == nil {
		return rejected(ReasonInvisible), nil
	}
	if surface.Kind != host.SurfaceElement {
		return rejected(ReasonVideoSurface), nil
	}

	return Verdict{Eligible: true}, nil
}
