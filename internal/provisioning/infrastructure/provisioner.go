// Package infrastructure provisions the network fabric: virtual networks and
// their reserved subnets, public IPs, the hub firewall and gateway services,
// hub-spoke peerings, and the forced-tunnel routing.
package infrastructure

import (
	"github.com/netfabric/hubnet/internal/provisioning"
)

const phase = "infrastructure"

// Public endpoint service keys, used for names and state lookups.
const (
	serviceFirewall = "firewall"
	serviceGateway  = "gateway"
	serviceBastion  = "bastion"
)

// Provisioner handles the network fabric.
type Provisioner struct{}

// NewProvisioner creates a new infrastructure provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. The order is the
// dependency order: subnets before the services bound to them, public IPs
// before the services that attach them, the firewall's private address
// confirmed before any route references it.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.ProvisionNetworks(ctx); err != nil {
		return err
	}
	if err := p.ProvisionPublicIPs(ctx); err != nil {
		return err
	}
	if err := p.ProvisionFirewall(ctx); err != nil {
		return err
	}
	if err := p.ProvisionGatewayServices(ctx); err != nil {
		return err
	}
	if err := p.ProvisionPeerings(ctx); err != nil {
		return err
	}
	return p.ProvisionRouting(ctx)
}
