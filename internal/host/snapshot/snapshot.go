// Package snapshot implements host.Host over a JSON document snapshot.
//
// A snapshot is a flat list of element style records in document order,
// typically produced by the rodhost dump command or written by hand in
// tests. Hit-testing is resolved geometrically from the recorded bounding
// boxes: the topmost element whose box contains the point and whose
// background actually paints wins.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/host"
)

// Element is one element record in a snapshot document.
type Element struct {
	ID    host.ElementID   `json:"id"`
	Kind  host.SurfaceKind `json:"kind,omitempty"`
	Style host.Style       `json:"style"`
}

// Document is the on-disk snapshot format.
type Document struct {
	URL      string    `json:"url,omitempty"`
	Elements []Element `json:"elements"`
}

// Host serves engine queries from a parsed snapshot document.
type Host struct {
	doc     Document
	index   map[host.ElementID]int
	applied map[host.ElementID]colour.RGB
}

// New creates a snapshot host from a parsed document.
func New(doc Document) (*Host, error) {
	index := make(map[host.ElementID]int, len(doc.Elements))
	for i, el := range doc.Elements {
		if el.ID == "" {
			return nil, fmt.Errorf("snapshot: element %d has no id", i)
		}
		if _, dup := index[el.ID]; dup {
			return nil, fmt.Errorf("snapshot: duplicate element id %q", el.ID)
		}
		index[el.ID] = i
	}
	return &Host{
		doc:     doc,
		index:   index,
		applied: make(map[host.ElementID]colour.RGB),
	}, nil
}

// Load reads and parses a snapshot document from a file.
func Load(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a snapshot document from JSON bytes.
func Parse(data []byte) (*Host, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: parse: %w", err)
	}
	return New(doc)
}

// TextElements returns every element id in document order.
func (h *Host) TextElements(_ context.Context) ([]host.ElementID, error) {
	ids := make([]host.ElementID, len(h.doc.Elements))
	for i, el := range h.doc.Elements {
		ids[i] = el.ID
	}
	return ids, nil
}

// ComputedStyle returns the recorded style of an element.
func (h *Host) ComputedStyle(_ context.Context, el host.ElementID) (host.Style, error) {
	i, ok := h.index[el]
	if !ok {
		return host.Style{}, fmt.Errorf("snapshot: unknown element %q", el)
	}
	return h.doc.Elements[i].Style, nil
}

// PointSurface returns the topmost painted surface at the given point.
// Elements later in document order paint on top of earlier ones. An
// ordinary element counts as painted only when its own background paints;
// video and iframe surfaces always count. With a non-empty below, only
// elements stacked under it are considered.
func (h *Host) PointSurface(_ context.Context, x, y float64, below host.ElementID) (*host.Surface, error) {
	start := len(h.doc.Elements) - 1
	if below != "" {
		i, ok := h.index[below]
		if !ok {
			return nil, fmt.Errorf("snapshot: unknown element %q", below)
		}
		start = i - 1
	}
	for i := start; i >= 0; i-- {
		el := h.doc.Elements[i]
		if !contains(el.Style.Bounds, x, y) {
			continue
		}

		kind := el.Kind
		if kind == "" {
			kind = host.SurfaceElement
		}
		if kind != host.SurfaceElement {
			return &host.Surface{Element: el.ID, Kind: kind}, nil
		}
		if paints(el.Style.BackgroundColor) {
			return &host.Surface{Element: el.ID, Kind: host.SurfaceElement}, nil
		}
	}
	return nil, nil
}

// Apply records a foreground change in memory. Snapshots have no renderer;
// tests and the audit CLI read the result back via Applied.
func (h *Host) Apply(_ context.Context, el host.ElementID, fg colour.RGB) error {
	if _, ok := h.index[el]; !ok {
		return fmt.Errorf("snapshot: unknown element %q", el)
	}
	h.applied[el] = fg
	return nil
}

// Applied returns the foreground colour applied to an element, if any.
func (h *Host) Applied(el host.ElementID) (colour.RGB, bool) {
	rgb, ok := h.applied[el]
	return rgb, ok
}

// paints reports whether a raw CSS background value paints any pixels.
func paints(value string) bool {
	layer, err := colour.ParseCSS(value)
	if err != nil {
		return false
	}
	return layer.Alpha > 0
}

// contains reports whether (x, y) falls inside r.
func contains(r host.Rect, x, y float64) bool {
	return !r.Empty() &&
		x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

var _ host.Host = (*Host)(nil)
