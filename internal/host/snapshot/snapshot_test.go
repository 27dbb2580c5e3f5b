package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/host"
)

func loadTestPage(t *testing.T) *Host {
	t.Helper()
	h, err := Load(filepath.Join("testdata", "page.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return h
}

func TestLoadTextElements(t *testing.T) {
	h := loadTestPage(t)

	ids, err := h.TextElements(context.Background())
	if err != nil {
		t.Fatalf("TextElements() error: %v", err)
	}
	want := []host.ElementID{"body", "hero-video", "hero-title", "byline", "lede"}
	if len(ids) != len(want) {
		t.Fatalf("TextElements() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("element %d = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestComputedStyle(t *testing.T) {
	h := loadTestPage(t)

	style, err := h.ComputedStyle(context.Background(), "byline")
	if err != nil {
		t.Fatalf("ComputedStyle() error: %v", err)
	}
	if style.Color != "#9b9b9b" {
		t.Errorf("Color = %q, want #9b9b9b", style.Color)
	}
	if style.FontSize != 14 {
		t.Errorf("FontSize = %v, want 14", style.FontSize)
	}

	if _, err := h.ComputedStyle(context.Background(), "missing"); err == nil {
		t.Error("ComputedStyle() for unknown element = nil error")
	}
}

func TestPointSurfaceTopmost(t *testing.T) {
	h := loadTestPage(t)

	// Inside the video area, the video paints on top of the body.
	surface, err := h.PointSurface(context.Background(), 400, 200, "")
	if err != nil {
		t.Fatalf("PointSurface() error: %v", err)
	}
	if surface == nil || surface.Element != "hero-video" {
		t.Fatalf("PointSurface(400, 200) = %+v, want hero-video", surface)
	}
	if surface.Kind != host.SurfaceVideo {
		t.Errorf("Kind = %q, want video", surface.Kind)
	}

	// Below the video, only the body paints.
	surface, err = h.PointSurface(context.Background(), 400, 800, "")
	if err != nil {
		t.Fatal(err)
	}
	if surface == nil || surface.Element != "body" {
		t.Errorf("PointSurface(400, 800) = %+v, want body", surface)
	}
}

func TestPointSurfaceBelow(t *testing.T) {
	h := loadTestPage(t)

	// The hero title sits over the video; looking below it must skip the
	// title's own (transparent) layer and land on the video.
	surface, err := h.PointSurface(context.Background(), 200, 180, "hero-title")
	if err != nil {
		t.Fatalf("PointSurface() error: %v", err)
	}
	if surface == nil || surface.Element != "hero-video" {
		t.Errorf("PointSurface(below hero-title) = %+v, want hero-video", surface)
	}

	if _, err := h.PointSurface(context.Background(), 200, 180, "missing"); err == nil {
		t.Error("PointSurface() with unknown below = nil error")
	}
}

func TestPointSurfaceNothingPainted(t *testing.T) {
	h := loadTestPage(t)

	surface, err := h.PointSurface(context.Background(), 5000, 5000, "")
	if err != nil {
		t.Fatal(err)
	}
	if surface != nil {
		t.Errorf("PointSurface() outside the page = %+v, want nil", surface)
	}
}

func TestApplyAndApplied(t *testing.T) {
	h := loadTestPage(t)

	fg := colour.RGB{R: 90, G: 90, B: 90}
	if err := h.Apply(context.Background(), "byline", fg); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	got, ok := h.Applied("byline")
	if !ok || got != fg {
		t.Errorf("Applied() = %v, %v, want %v, true", got, ok, fg)
	}

	if _, ok := h.Applied("lede"); ok {
		t.Error("Applied() for untouched element = true")
	}

	if err := h.Apply(context.Background(), "missing", fg); err == nil {
		t.Error("Apply() for unknown element = nil error")
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid json", `{"elements": [`},
		{"missing id", `{"elements": [{"style": {}}]}`},
		{"duplicate id", `{"elements": [{"id": "a", "style": {}}, {"id": "a", "style": {}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); err == nil {
				t.Error("Parse() = nil error, want failure")
			}
		})
	}
}
