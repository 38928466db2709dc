package database

import (
	"fmt"

	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/util/naming"
)

// ProvisionServer finds or creates the PostgreSQL flexible server.
//
// The server name carries a timestamp suffix, so lookup goes by the stable
// prefix: whichever server an earlier run minted is adopted instead of
// creating a sibling. Adoption never rotates the admin credential.
func (p *Provisioner) ProvisionServer(ctx *provisioning.Context) error {
	prefix := ctx.Config.Database.ServerPrefix

	server, err := ctx.Azure.FindServerByPrefix(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to look up database server with prefix %s: %w", prefix, err)
	}

	if server != nil {
		ctx.Observer.Printf("[%s] Adopting existing database server %s", phase, server.Name)
		ctx.State.Server = server
		return nil
	}

	name := naming.ServerName(prefix)
	ctx.Observer.Printf("[%s] Creating database server %s (this can take several minutes)...", phase, name)
	server, err = ctx.Azure.CreateServer(ctx, name, ctx.Config.Database.AdminUser, ctx.State.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create database server %s: %w", name, err)
	}

	ctx.State.Server = server
	ctx.Observer.Printf("[%s] Database server %s created", phase, server.Name)
	return nil
}
