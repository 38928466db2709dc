package provisioning

import (
	"context"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/platform/azure"
)

// State holds the results phases thread to one another: resource IDs from
// producer steps, confirmed attributes from readiness waits, and the final
// connection details for the completion message. It is progressively
// populated; each field is written by exactly one phase.
type State struct {
	// Infrastructure results.
	VNetIDs           map[string]string // network name -> ARM ID
	SubnetIDs         map[string]string // "vnet/subnet" -> ARM ID
	PublicIPIDs       map[string]string // service name -> ARM ID
	FirewallPrivateIP string

	// Database results.
	Server     *azure.ServerInfo
	EndpointIP string

	// Preflight results.
	AdminPassword string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		VNetIDs:     make(map[string]string),
		SubnetIDs:   make(map[string]string),
		PublicIPIDs: make(map[string]string),
	}
}

// SubnetID returns the recorded ARM ID for a subnet.
func (s *State) SubnetID(vnet, subnet string) string {
	return s.SubnetIDs[vnet+"/"+subnet]
}

// SetSubnetID records a subnet's ARM ID.
func (s *State) SetSubnetID(vnet, subnet, id string) {
	s.SubnetIDs[vnet+"/"+subnet] = id
}

// Context wraps the dependencies and state a phase needs.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Azure    azure.Manager
	Timeouts *config.Timeouts
	Observer Observer
}

// NewContext creates a provisioning context for one run.
func NewContext(ctx context.Context, cfg *config.Config, mgr azure.Manager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Azure:    mgr,
		Timeouts: config.LoadTimeouts(),
		Observer: NewConsoleObserver(),
	}
}

// WaitConfig builds the poller configuration from the run's timeouts.
func (c *Context) WaitConfig() azure.WaitConfig {
	return azure.WaitConfig{
		Interval: c.Timeouts.PollInterval,
		MaxWait:  c.Timeouts.PollMaxWait,
	}
}
