// Package host defines the engine's view of the document being audited.
//
// The engine never touches a DOM directly: it consumes style snapshots and
// hit-test results through the Host interface, and hands corrected colours
// back through Apply. Implementations live in the snapshot (offline JSON
// dump) and rodhost (live Chrome) subpackages.
package host

import (
	"context"

	"github.com/readwell/readwell/internal/colour"
)

// ElementID is a stable identity for a renderable node within one document.
// The host assigns it; the engine only compares and stores it.
type ElementID string

// SurfaceKind classifies what a point hit-test landed on.
type SurfaceKind string

const (
	// SurfaceElement is an ordinary painted element.
	SurfaceElement SurfaceKind = "element"

	// SurfaceVideo is a video element. The engine cannot verify the true
	// rendered pixel behind text over video, so these veto correction.
	SurfaceVideo SurfaceKind = "video"

	// SurfaceIframe is third-party iframe content, opaque to the host.
	SurfaceIframe SurfaceKind = "iframe"
)

// Rect is a screen-space bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the screen-space centre point of the rect.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Empty reports whether the rect has no visible area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Style is the computed-style snapshot of one element, with raw CSS colour
// strings exactly as the renderer reports them. Colour parsing and var()
// resolution happen in the resolver, not here.
type Style struct {
	Color            string            `json:"color"`
	BackgroundColor  string            `json:"backgroundColor"`
	BeforeBackground string            `json:"beforeBackground,omitempty"`
	AfterBackground  string            `json:"afterBackground,omitempty"`
	CustomProperties map[string]string `json:"customProperties,omitempty"`
	Opacity          float64           `json:"opacity"`
	Display          string            `json:"display"`
	Visibility       string            `json:"visibility"`
	Bounds           Rect              `json:"bounds"`

	// Context fields consumed by the advisory oracle.
	ElementType string  `json:"elementType,omitempty"`
	Role        string  `json:"role,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	FontWeight  int     `json:"fontWeight,omitempty"`
	TextLength  int     `json:"textLength,omitempty"`

	// OptOut is true when the element or an ancestor is marked as out of
	// bounds for correction.
	OptOut bool `json:"optOut,omitempty"`
}

// Surface is the result of a point hit-test.
type Surface struct {
	Element ElementID   `json:"element"`
	Kind    SurfaceKind `json:"kind"`
}

// Host is the document side of the engine. All methods are synchronous;
// implementations backed by a live browser should honour ctx cancellation.
type Host interface {
	// TextElements enumerates candidate text-bearing elements in document
	// order.
	TextElements(ctx context.Context) ([]ElementID, error)

	// ComputedStyle returns the style snapshot of an element.
	ComputedStyle(ctx context.Context, el ElementID) (Style, error)

	// PointSurface returns the topmost painted surface at a screen-space
	// point, or nil when nothing is painted there. A non-empty below
	// restricts the search to surfaces stacked under that element, which
	// is how the resolver looks behind an element's own paint.
	PointSurface(ctx context.Context, x, y float64, below ElementID) (*Surface, error)

	// Apply sets the element's foreground colour. The engine calls this
	// exactly once per corrected element; Reset calls it again with the
	// original colour.
	Apply(ctx context.Context, el ElementID, fg colour.RGB) error
}
