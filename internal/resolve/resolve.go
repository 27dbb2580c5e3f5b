// Package resolve determines the effective opaque background colour behind
// an element's text.
//
// Resolution reads the element's own paint (background plus ::before and
// ::after pseudo elements, with single-level var() substitution), then
// climbs to the surface hit-tested at the centre of the element's bounding
// box, compositing source-over as long as the accumulated paint is not yet
// opaque. The climb is a bounded loop: at most one layer removed from the
// origin element. When the chain is exhausted without an opaque result the
// resolver reports failure rather than guessing.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/host"
)

// ErrUnresolved means the fallback chain was exhausted without producing
// an opaque background. Callers skip the element; they never guess.
var ErrUnresolved = errors.New("resolve: background undeterminable")

// ErrRestrictedSurface means resolution would require sampling a video or
// third-party iframe surface, which the engine cannot verify.
var ErrRestrictedSurface = errors.New("resolve: background painted by restricted surface")

// maxClimbs bounds the hit-test climb to one layer removed from the
// origin element.
const maxClimbs = 1

// Resolver resolves effective backgrounds through a host.
type Resolver struct {
	host host.Host
	log  hclog.Logger
}

// New creates a Resolver. A nil logger disables logging.
func New(h host.Host, log hclog.Logger) *Resolver {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Resolver{host: h, log: log}
}

// Effective returns the opaque RGB colour a viewer sees behind el's text.
func (r *Resolver) Effective(ctx context.Context, el host.ElementID) (colour.RGB, error) {
	style, err := r.host.ComputedStyle(ctx, el)
	if err != nil {
		return colour.RGB{}, fmt.Errorf("resolve: style of %q: %w", el, err)
	}

	accum := ownPaint(style)
	if accum.IsOpaque() {
		return accum.Colour, nil
	}

	x, y := style.Bounds.Center()
	below := el
	for climbs := 0; climbs < maxClimbs && !accum.IsOpaque(); climbs++ {
		surface, err := r.host.PointSurface(ctx, x, y, below)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("resolve: hit test behind %q: %w", below, err)
		}
		if surface == nil {
			break
		}
		if surface.Kind != host.SurfaceElement {
			r.log.Debug("background behind restricted surface", "element", el, "kind", surface.Kind)
			return colour.RGB{}, ErrRestrictedSurface
		}

		behind, err := r.host.ComputedStyle(ctx, surface.Element)
		if err != nil {
			return colour.RGB{}, fmt.Errorf("resolve: style of %q: %w", surface.Element, err)
		}
		accum = colour.CompositeOver(accum, ownPaint(behind))
		below = surface.Element
	}

	if !accum.IsOpaque() {
		r.log.Debug("background unresolved", "element", el, "alpha", accum.Alpha)
		return colour.RGB{}, ErrUnresolved
	}
	return accum.Colour, nil
}

// ownPaint composites the paint an element contributes by itself: the
// computed background colour underneath, then ::before, then ::after.
// Values that fail to parse contribute nothing.
func ownPaint(style host.Style) colour.Layer {
	accum := colour.Layer{}
	for _, raw := range []string{style.BackgroundColor, style.BeforeBackground, style.AfterBackground} {
		if raw == "" {
			continue
		}
		layer, err := colour.ParseCSS(resolveVar(raw, style.CustomProperties))
		if err != nil {
			continue
		}
		accum = colour.CompositeOver(layer, accum)
	}
	return accum
}

// resolveVar substitutes a single-level var(--name) or var(--name, fallback)
// reference from the element's resolved custom-property table. Transitive
// variable chains are not followed; an unknown name falls back to the
// fallback text, or to the raw value when there is none.
func resolveVar(value string, props map[string]string) string {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "var(") || !strings.HasSuffix(v, ")") {
		return value
	}

	body := v[len("var(") : len(v)-1]
	name := body
	fallback := ""
	if i := strings.Index(body, ","); i >= 0 {
		name = body[:i]
		fallback = strings.TrimSpace(body[i+1:])
	}
	name = strings.TrimSpace(name)

	if resolved, ok := props[name]; ok && resolved != "" {
		return resolved
	}
	if fallback != "" {
		return fallback
	}
	return value
}
