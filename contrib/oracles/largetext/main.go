// largetext - Large-Text Comfort Oracle (Readwell Oracle Plugin Example)
//
// This is an example readwell oracle plugin written in Go. It demonstrates:
// - Implementing the advisory.Oracle interface
// - Serving over the go-plugin protocol via advisory.Serve
// - A heuristic verdict that follows the WCAG large-text allowance
//
// The oracle judges a failing pairing comfortable when the element renders
// as large text (at least 24px, or 18.66px bold) and still reaches the
// relaxed large-text ratio of 3.0. Confidence scales with how far above
// 3.0 the pairing sits.
//
// Build:
//   go build -o largetext .
//
// Usage:
//   readwell audit --oracle-plugin ./largetext page.json
package main

import (
	"context"

	"github.com/readwell/readwell/pkg/advisory"
)

const (
	largePx     = 24.0
	largeBoldPx = 18.66
	boldWeight  = 700
	largeRatio  = 3.0
)

type largeTextOracle struct{}

func (largeTextOracle) Name() string { return "largetext" }

func (largeTextOracle) Judge(_ context.Context, req advisory.Request) (advisory.Decision, error) {
	large := req.FontSize >= largePx ||
		(req.FontSize >= largeBoldPx && req.FontWeight >= boldWeight)
	if !large || req.Contrast < largeRatio {
		return advisory.Decision{Comfortable: false, Confidence: 1}, nil
	}

	// Confidence climbs from 0.5 at ratio 3.0 to 1.0 at ratio 4.5.
	confidence := 0.5 + (req.Contrast-largeRatio)/3.0
	if confidence > 1 {
		confidence = 1
	}
	return advisory.Decision{Comfortable: true, Confidence: confidence}, nil
}

func main() {
	advisory.Serve(largeTextOracle{})
}
