// Package advisory provides the public API for external readwell advisory
// oracle plugins.
//
// An oracle plugin is a standalone executable that speaks the HashiCorp
// go-plugin protocol. It receives the context of a text element whose
// contrast fails the configured target and answers whether the original
// pairing is nonetheless comfortable to read. A confident "comfortable"
// answer vetoes the correction; an oracle can never cause one.
package advisory

import (
	"context"

	"github.com/hashicorp/go-plugin"
)

// Handshake is the handshake configuration shared by readwell and its
// oracle plugins. The magic cookie keeps unrelated binaries from being
// dispensed as oracles by accident.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "READWELL_ORACLE",
	MagicCookieValue: "readwell_advisory_oracle",
}

// PluginName is the name oracles are registered under in the plugin map.
const PluginName = "oracle"

// Request describes the element under judgement. Colours are 8-bit RGB
// triples.
type Request struct {
	Foreground  [3]uint8 `json:"fg"`
	Background  [3]uint8 `json:"bg"`
	Contrast    float64  `json:"contrast_ratio"`
	ElementType string   `json:"element_type"`
	Role        string   `json:"role,omitempty"`
	TextLength  int      `json:"text_length,omitempty"`
	FontSize    float64  `json:"font_size"`
	FontWeight  int      `json:"font_weight"`
	UserScale   float64  `json:"user_scale"`
}

// Decision is the oracle's verdict. Confidence must lie in [0, 1].
type Decision struct {
	Comfortable bool    `json:"comfortable"`
	Confidence  float64 `json:"confidence"`
}

// Oracle is the interface oracle plugins implement.
type Oracle interface {
	// Judge returns the oracle's opinion of the original pairing. An error
	// means no opinion; the engine falls back to WCAG maths alone.
	Judge(ctx context.Context, req Request) (Decision, error)

	// Name returns a short identifier for diagnostics.
	Name() string
}

// Serve starts the plugin server for an oracle implementation. Call this
// from the plugin executable's main.
func Serve(impl Oracle) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &OracleRPC{Impl: impl},
		},
	})
}
