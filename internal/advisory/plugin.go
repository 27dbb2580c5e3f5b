// Package advisory provides the external oracle plugin loader.
package advisory

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pubadvisory "github.com/readwell/readwell/pkg/advisory"
)

// PluginGate runs an external oracle executable over the go-plugin
// protocol and adapts it to the Gate interface. The subprocess is started
// lazily on the first judgement and killed by Close.
type PluginGate struct {
	path   string
	log    hclog.Logger
	client *plugin.Client
	oracle pubadvisory.Oracle
}

// NewPluginGate creates a gate backed by the oracle executable at path.
func NewPluginGate(path string, log hclog.Logger) *PluginGate {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &PluginGate{path: path, log: log}
}

// connect starts the plugin subprocess and dispenses the oracle.
func (g *PluginGate) connect() (pubadvisory.Oracle, error) {
	if g.oracle != nil {
		return g.oracle, nil
	}

	g.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: pubadvisory.Handshake,
		Plugins: map[string]plugin.Plugin{
			pubadvisory.PluginName: &pubadvisory.OracleRPC{},
		},
		Cmd:              exec.Command(g.path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           g.log,
	})

	rpcClient, err := g.client.Client()
	if err != nil {
		g.client.Kill()
		g.client = nil
		return nil, fmt.Errorf("advisory: connect oracle plugin: %w", err)
	}

	raw, err := rpcClient.Dispense(pubadvisory.PluginName)
	if err != nil {
		g.client.Kill()
		g.client = nil
		return nil, fmt.Errorf("advisory: dispense oracle plugin: %w", err)
	}

	oracle, ok := raw.(pubadvisory.Oracle)
	if !ok {
		g.client.Kill()
		g.client = nil
		return nil, fmt.Errorf("advisory: plugin %s is not an oracle", g.path)
	}
	g.oracle = oracle
	return oracle, nil
}

// Judge forwards the request to the plugin oracle.
func (g *PluginGate) Judge(ctx context.Context, req Request) (Decision, error) {
	oracle, err := g.connect()
	if err != nil {
		return Decision{}, err
	}

	decision, err := oracle.Judge(ctx, pubadvisory.Request{
		Foreground:  [3]uint8{req.Foreground.R, req.Foreground.G, req.Foreground.B},
		Background:  [3]uint8{req.Background.R, req.Background.G, req.Background.B},
		Contrast:    req.Contrast,
		ElementType: req.ElementType,
		Role:        req.Role,
		TextLength:  req.TextLength,
		FontSize:    req.FontSize,
		FontWeight:  req.FontWeight,
		UserScale:   req.UserScale,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("advisory: oracle plugin: %w", err)
	}
	if decision.Confidence < 0 || decision.Confidence > 1 {
		return Decision{}, fmt.Errorf("advisory: oracle plugin confidence %v out of [0, 1]", decision.Confidence)
	}
	return Decision{Comfortable: decision.Comfortable, Confidence: decision.Confidence}, nil
}

// Close kills the plugin subprocess if one is running.
func (g *PluginGate) Close() {
	if g.client != nil {
		g.client.Kill()
		g.client = nil
		g.oracle = nil
	}
}

var _ Gate = (*PluginGate)(nil)
