// Package database provisions the PostgreSQL flexible server and the private
// link chain that makes it reachable from the topology: private endpoint,
// private DNS zone, zone links and the endpoint's zone group.
package database

import (
	"github.com/netfabric/hubnet/internal/provisioning"
)

const phase = "database"

// Provisioner handles the database tier.
type Provisioner struct{}

// NewProvisioner creates a new database provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. The server must
// exist before the private endpoint can target it, and the zone must exist
// before the zone group can bind the endpoint to it.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.ProvisionServer(ctx); err != nil {
		return err
	}
	return p.ProvisionPrivateLink(ctx)
}
