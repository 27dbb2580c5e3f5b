// Package rodhost implements host.Host against a live Chrome page driven
// by Rod. Elements are identified by a data attribute stamped during
// enumeration, so identities stay stable across the whole audit.
package rodhost

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hashicorp/go-hclog"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/host"
)

// Options configures how the browser is reached.
type Options struct {
	// ControlURL is the DevTools WebSocket URL of an already-running
	// Chrome. Empty launches a local headless instance.
	ControlURL string

	// NavigateTimeout bounds navigation plus page load. Default 30s.
	NavigateTimeout time.Duration

	Logger hclog.Logger
}

// Host drives one Chrome tab.
type Host struct {
	browser  *rod.Browser
	page     *rod.Page
	launched bool
	log      hclog.Logger
}

var _ host.Host = (*Host)(nil)

// Open connects to Chrome, opens a tab, and navigates it to url.
func Open(ctx context.Context, url string, opts Options) (*Host, error) {
	if opts.NavigateTimeout <= 0 {
		opts.NavigateTimeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	controlURL := opts.ControlURL
	launched := false
	if controlURL == "" {
		u, err := launcher.New().Headless(true).Launch()
		if err != nil {
			return nil, fmt.Errorf("rodhost: launch chrome: %w", err)
		}
		controlURL = u
		launched = true
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("rodhost: connect: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("rodhost: open tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, opts.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		page.Close()
		browser.Close()
		return nil, fmt.Errorf("rodhost: navigate %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		opts.Logger.Warn("page load wait timed out, continuing", "url", url, "error", err)
	}

	return &Host{
		browser:  browser,
		page:     page,
		launched: launched,
		log:      opts.Logger,
	}, nil
}

// Close closes the tab and, when this process launched Chrome, the browser.
func (h *Host) Close() error {
	if err := h.page.Close(); err != nil {
		return err
	}
	if h.launched {
		return h.browser.Close()
	}
	return nil
}

// eval runs a page function that returns JSON.stringify of its result and
// decodes it into out. A null result leaves out untouched and returns
// false.
func (h *Host) eval(ctx context.Context, out any, js string, args ...any) (bool, error) {
	res, err := h.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return false, err
	}
	raw := res.Value.Str()
	if raw == "" || raw == "null" {
		return false, nil
	}
	if out != nil {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return false, fmt.Errorf("rodhost: decode eval result: %w", err)
		}
	}
	return true, nil
}

const jsTextElements = `() => {
	const ids = [];
	let n = 0;
	for (const el of document.querySelectorAll('body, body *')) {
		const hasText = Array.from(el.childNodes).some(
			c => c.nodeType === Node.TEXT_NODE && c.textContent.trim().length > 0);
		if (!hasText) continue;
		if (!el.dataset.readwellId) el.dataset.readwellId = 'rw-' + (n++);
		ids.push(el.dataset.readwellId);
	}
	return JSON.stringify(ids);
}`

// TextElements stamps every text-bearing element with a stable identity
// attribute and returns the identities in document order.
func (h *Host) TextElements(ctx context.Context) ([]host.ElementID, error) {
	var ids []host.ElementID
	if _, err := h.eval(ctx, &ids, jsTextElements); err != nil {
		return nil, fmt.Errorf("rodhost: enumerate text elements: %w", err)
	}
	h.log.Debug("enumerated text elements", "count", len(ids))
	return ids, nil
}

const jsComputedStyle = `(id) => {
	const el = document.querySelector('[data-readwell-id="' + id + '"]');
	if (!el) return JSON.stringify(null);
	const cs = getComputedStyle(el);
	const before = getComputedStyle(el, '::before');
	const after = getComputedStyle(el, '::after');
	const rect = el.getBoundingClientRect();
	const text = Array.from(el.childNodes)
		.filter(n => n.nodeType === Node.TEXT_NODE)
		.map(n => n.textContent).join('').trim();
	return JSON.stringify({
		color: cs.color,
		backgroundColor: cs.backgroundColor,
		beforeBackground: before.content === 'none' ? '' : before.backgroundColor,
		afterBackground: after.content === 'none' ? '' : after.backgroundColor,
		opacity: parseFloat(cs.opacity),
		display: cs.display,
		visibility: cs.visibility,
		bounds: {x: rect.x, y: rect.y, width: rect.width, height: rect.height},
		elementType: el.tagName.toLowerCase(),
		role: el.getAttribute('role') || '',
		fontSize: parseFloat(cs.fontSize),
		fontWeight: parseInt(cs.fontWeight, 10) || 400,
		textLength: text.length,
		optOut: el.closest('[data-readwell-opt-out]') !== null,
	});
}`

// ComputedStyle reads the rendered style of an element. The browser has
// already substituted custom properties, so CustomProperties stays empty.
func (h *Host) ComputedStyle(ctx context.Context, el host.ElementID) (host.Style, error) {
	var style host.Style
	found, err := h.eval(ctx, &style, jsComputedStyle, string(el))
	if err != nil {
		return host.Style{}, fmt.Errorf("rodhost: computed style of %s: %w", el, err)
	}
	if !found {
		return host.Style{}, fmt.Errorf("rodhost: element %s not in document", el)
	}
	return style, nil
}

const jsPointSurface = `(x, y, below) => {
	const stack = document.elementsFromPoint(x, y);
	let start = 0;
	if (below) {
		const i = stack.findIndex(el => el.dataset && el.dataset.readwellId === below);
		if (i >= 0) start = i + 1;
	}
	if (start >= stack.length) return JSON.stringify(null);
	const el = stack[start];
	let kind = 'element';
	if (el.tagName === 'VIDEO') kind = 'video';
	else if (el.tagName === 'IFRAME') kind = 'iframe';
	if (!el.dataset.readwellId) {
		el.dataset.readwellId = 'rw-hit-' + Math.floor(Math.random() * 1e9);
	}
	return JSON.stringify({element: el.dataset.readwellId, kind: kind});
}`

// PointSurface hit-tests the page at a viewport point. A non-empty below
// skips surfaces stacked on top of that element.
func (h *Host) PointSurface(ctx context.Context, x, y float64, below host.ElementID) (*host.Surface, error) {
	var surface host.Surface
	found, err := h.eval(ctx, &surface, jsPointSurface, x, y, string(below))
	if err != nil {
		return nil, fmt.Errorf("rodhost: hit-test (%v, %v): %w", x, y, err)
	}
	if !found {
		return nil, nil
	}
	return &surface, nil
}

const jsApply = `(id, value) => {
	const el = document.querySelector('[data-readwell-id="' + id + '"]');
	if (!el) return JSON.stringify(null);
	el.style.setProperty('color', value, 'important');
	return JSON.stringify(true);
}`

// Apply sets the element's foreground colour as an important inline style
// so it wins over the stylesheet rule being corrected.
func (h *Host) Apply(ctx context.Context, el host.ElementID, fg colour.RGB) error {
	found, err := h.eval(ctx, nil, jsApply, string(el), fg.String())
	if err != nil {
		return fmt.Errorf("rodhost: apply colour to %s: %w", el, err)
	}
	if !found {
		return fmt.Errorf("rodhost: element %s not in document", el)
	}
	h.log.Debug("applied colour", "element", el, "colour", fg.Hex())
	return nil
}
