// Package advisory provides the HTTP readability oracle client.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/readwell/readwell/internal/version"
)

// DefaultTimeout bounds a single prediction request.
const DefaultTimeout = 3 * time.Second

// maxResponseBytes caps how much of an oracle response is read.
const maxResponseBytes = 1 << 16

// predictRequest is the prediction wire format.
type predictRequest struct {
	Foreground [3]uint8 `json:"fg"`
	Background [3]uint8 `json:"bg"`
	Contrast   float64  `json:"contrast_ratio"`
	Element    string   `json:"element_type"`
	FontSize   float64  `json:"font_size"`
	FontWeight int      `json:"font_weight"`
	UserScale  float64  `json:"user_scale"`
}

// HTTPGate queries one or more readability prediction endpoints over HTTP.
// Endpoints are tried in order; the first well-formed response wins. Any
// endpoint that times out, errors, or answers with malformed JSON is
// skipped, and when all endpoints fail the gate reports no opinion.
type HTTPGate struct {
	endpoints []string
	client    *http.Client
	log       hclog.Logger
}

// HTTPOption configures an HTTPGate.
type HTTPOption func(*HTTPGate)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(g *HTTPGate) {
		g.client.Timeout = d
	}
}

// WithLogger sets the gate's logger.
func WithLogger(log hclog.Logger) HTTPOption {
	return func(g *HTTPGate) {
		g.log = log
	}
}

// NewHTTPGate creates an HTTP oracle client for the given endpoint base
// URLs (e.g. "http://127.0.0.1:5000").
func NewHTTPGate(endpoints []string, opts ...HTTPOption) *HTTPGate {
	g := &HTTPGate{
		endpoints: endpoints,
		client:    &http.Client{Timeout: DefaultTimeout},
		log:       hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Judge asks each configured endpoint in turn for a readability verdict.
func (g *HTTPGate) Judge(ctx context.Context, req Request) (Decision, error) {
	if len(g.endpoints) == 0 {
		return Decision{}, fmt.Errorf("advisory: no endpoints configured")
	}

	body, err := json.Marshal(predictRequest{
		Foreground: [3]uint8{req.Foreground.R, req.Foreground.G, req.Foreground.B},
		Background: [3]uint8{req.Background.R, req.Background.G, req.Background.B},
		Contrast:   req.Contrast,
		Element:    req.ElementType,
		FontSize:   req.FontSize,
		FontWeight: req.FontWeight,
		UserScale:  req.UserScale,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("advisory: encode request: %w", err)
	}

	var lastErr error
	for _, endpoint := range g.endpoints {
		decision, err := g.predict(ctx, endpoint, body)
		if err != nil {
			g.log.Debug("oracle endpoint failed", "endpoint", endpoint, "error", err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return decision, nil
	}
	return Decision{}, fmt.Errorf("advisory: all endpoints failed: %w", lastErr)
}

// predict performs one prediction request against one endpoint.
func (g *HTTPGate) predict(ctx context.Context, endpoint string, body []byte) (Decision, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/predict", bytes.NewReader(body))
	if err != nil {
		return Decision{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("readwell/%s", version.Version))

	resp, err := g.client.Do(req)
	if err != nil {
		return Decision{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Decision{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Decision{}, fmt.Errorf("read response: %w", err)
	}

	var decision Decision
	if err := json.Unmarshal(data, &decision); err != nil {
		return Decision{}, fmt.Errorf("malformed response: %w", err)
	}
	if decision.Confidence < 0 || decision.Confidence > 1 {
		return Decision{}, fmt.Errorf("confidence %v out of [0, 1]", decision.Confidence)
	}
	return decision, nil
}

// Healthy probes an endpoint's health route and returns its latency.
func (g *HTTPGate) Healthy(ctx context.Context, endpoint string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/", nil)
	if err != nil {
		return 0, fmt.Errorf("advisory: create request: %w", err)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("advisory: health probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("advisory: health probe: status %d", resp.StatusCode)
	}
	return time.Since(start), nil
}

// Endpoints returns the configured endpoint list.
func (g *HTTPGate) Endpoints() []string {
	return g.endpoints
}

var _ Gate = (*HTTPGate)(nil)
