// Package advisory provides the go-plugin RPC glue for oracle plugins.
package advisory

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// OracleRPC implements the go-plugin Plugin interface for oracles.
type OracleRPC struct {
	plugin.Plugin
	Impl Oracle
}

// Server returns an RPC server for this plugin.
func (p *OracleRPC) Server(*plugin.MuxBroker) (any, error) {
	return &OracleRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *OracleRPC) Client(b *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &OracleRPCClient{client: c}, nil
}

// OracleRPCServer is the RPC server side, running inside the plugin
// process.
type OracleRPCServer struct {
	Impl Oracle
}

// Judge implements the RPC method for readability judgement.
func (s *OracleRPCServer) Judge(req Request, resp *Decision) error {
	decision, err := s.Impl.Judge(context.Background(), req)
	if err != nil {
		return err
	}
	*resp = decision
	return nil
}

// Name implements the RPC method for the oracle identifier.
func (s *OracleRPCServer) Name(_ any, resp *string) error {
	*resp = s.Impl.Name()
	return nil
}

// OracleRPCClient is the RPC client side, running inside readwell.
type OracleRPCClient struct {
	client *rpc.Client
}

// Judge calls the remote Judge method.
func (c *OracleRPCClient) Judge(_ context.Context, req Request) (Decision, error) {
	var decision Decision
	if err := c.client.Call("Plugin.Judge", req, &decision); err != nil {
		return Decision{}, err
	}
	return decision, nil
}

// Name calls the remote Name method.
func (c *OracleRPCClient) Name() string {
	var name string
	if err := c.client.Call("Plugin.Name", new(any), &name); err != nil {
		return "unknown"
	}
	return name
}

var _ Oracle = (*OracleRPCClient)(nil)
