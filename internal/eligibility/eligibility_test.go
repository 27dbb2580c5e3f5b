package eligibility

import (
	"context"
	"testing"

	"github.com/readwell/readwell/internal/host"
	"github.com/readwell/readwell/internal/host/snapshot"
)

func visibleStyle() host.Style {
	return host.Style{
		Color:           "rgb(90, 90, 90)",
		BackgroundColor: "rgb(255, 255, 255)",
		Opacity:         1,
		Display:         "block",
		Visibility:      "visible",
		Bounds:          host.Rect{X: 0, Y: 0, Width: 200, Height: 20},
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*host.Style)
		processed  bool
		wantOK     bool
		wantReason Reason
	}{
		{
			name:   "visible element is eligible",
			mutate: func(*host.Style) {},
			wantOK: true,
		},
		{
			name:       "already processed",
			mutate:     func(*host.Style) {},
			processed:  true,
			wantReason: ReasonProcessed,
		},
		{
			name:       "opted out",
			mutate:     func(s *host.Style) { s.OptOut = true },
			wantReason: ReasonOptOut,
		},
		{
			name:       "zero size box",
			mutate:     func(s *host.Style) { s.Bounds.Width = 0 },
			wantReason: ReasonInvisible,
		},
		{
			name:       "display none",
			mutate:     func(s *host.Style) { s.Display = "none" },
			wantReason: ReasonInvisible,
		},
		{
			name:       "visibility hidden",
			mutate:     func(s *host.Style) { s.Visibility = "hidden" },
			wantReason: ReasonInvisible,
		},
		{
			name:       "near zero opacity",
			mutate:     func(s *host.Style) { s.Opacity = 0.004 },
			wantReason: ReasonInvisible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := visibleStyle()
			tt.mutate(&style)

			h, err := snapshot.New(snapshot.Document{Elements: []snapshot.Element{
				{ID: "el", Style: style},
			}})
			if err != nil {
				t.Fatalf("snapshot.New: %v", err)
			}

			verdict, err := Check(context.Background(), h, "el", style, tt.processed)
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if verdict.Eligible != tt.wantOK {
				t.Fatalf("Eligible = %v, want %v", verdict.Eligible, tt.wantOK)
			}
			if verdict.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", verdict.Reason, tt.wantReason)
			}
		})
	}
}

func TestCheckVideoSurfaceVeto(t *testing.T) {
	caption := visibleStyle()
	caption.BackgroundColor = "transparent"
	caption.Bounds = host.Rect{X: 100, Y: 300, Width: 400, Height: 30}

	h, err := snapshot.New(snapshot.Document{Elements: []snapshot.Element{
		{
			ID:    "player",
			Kind:  host.SurfaceVideo,
			Style: host.Style{Bounds: host.Rect{X: 0, Y: 0, Width: 640, Height: 360}},
		},
		{ID: "caption", Style: caption},
	}})
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}

	verdict, err := Check(context.Background(), h, "caption", caption, false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if verdict.Eligible {
		t.Fatal("caption over video reported eligible")
	}
	if verdict.Reason != ReasonVideoSurface {
		t.Errorf("Reason = %q, want %q", verdict.Reason, ReasonVideoSurface)
	}
}

func TestCheckNoPaintableSurface(t *testing.T) {
	// The element paints nothing and nothing paints underneath it.
	style := visibleStyle()
	style.BackgroundColor = "transparent"

	h, err := snapshot.New(snapshot.Document{Elements: []snapshot.Element{
		{ID: "el", Style: style},
	}})
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}

	verdict, err := Check(context.Background(), h, "el", style, false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if verdict.Eligible || verdict.Reason != ReasonInvisible {
		t.Errorf("verdict = %+v, want invisible rejection", verdict)
	}
}
