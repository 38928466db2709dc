package database

import (
	"context"
	"fmt"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/util/naming"
)

// ProvisionPrivateLink builds the chain that resolves the server's host name
// to a private address inside the topology: private endpoint in the hub
// database subnet, private DNS zone linked to every network, and the zone
// group that writes the endpoint's record into the zone.
func (p *Provisioner) ProvisionPrivateLink(pctx *provisioning.Context) error {
	serverID, err := p.resolveServerID(pctx)
	if err != nil {
		return err
	}

	epName := naming.PrivateEndpoint(pctx.Config.Prefix)
	subnetID := pctx.State.SubnetID(pctx.Config.Hub.Name, pctx.Config.DatabaseSubnet().Name)

	pctx.Observer.Printf("[%s] Reconciling private endpoint %s...", phase, epName)
	if err := pctx.Azure.EnsurePrivateEndpoint(pctx, epName, subnetID, serverID); err != nil {
		return fmt.Errorf("failed to ensure private endpoint %s: %w", epName, err)
	}

	pctx.Observer.Printf("[%s] Reconciling private DNS zone %s...", phase, config.PrivateZoneName)
	zoneID, err := pctx.Azure.EnsurePrivateZone(pctx, config.PrivateZoneName)
	if err != nil {
		return fmt.Errorf("failed to ensure private DNS zone %s: %w", config.PrivateZoneName, err)
	}

	for _, network := range pctx.Config.Networks() {
		linkName := naming.ZoneLink(pctx.Config.Prefix, network.Name)
		if err := pctx.Azure.EnsureZoneLink(pctx, config.PrivateZoneName, linkName, pctx.State.VNetIDs[network.Name]); err != nil {
			return fmt.Errorf("failed to ensure zone link %s: %w", linkName, err)
		}
	}

	// The zone group is the one resource that is always rebuilt. A group
	// bound to a stale endpoint generation leaves the zone record pointing
	// at a dead address, and the control plane reports that state as
	// healthy. Delete-and-recreate is the only reliable refresh.
	groupName := naming.ZoneGroup(pctx.Config.Prefix)
	pctx.Observer.Printf("[%s] Recreating zone group %s...", phase, groupName)
	if err := pctx.Azure.RecreateZoneGroup(pctx, epName, groupName, zoneID); err != nil {
		return fmt.Errorf("failed to recreate zone group %s: %w", groupName, err)
	}

	ip, err := azure.WaitForAttribute(pctx, epName, "private address",
		func(ctx context.Context) (string, error) {
			return pctx.Azure.PrivateEndpointIP(ctx, epName)
		}, pctx.WaitConfig())
	if err != nil {
		return err
	}
	pctx.State.EndpointIP = ip
	pctx.Observer.Printf("[%s] Private endpoint %s resolved to %s", phase, epName, ip)

	// Record propagation into the zone lags the endpoint itself and heals
	// without intervention, so an empty zone is a warning, not a failure.
	count, err := pctx.Azure.ZoneRecordCount(pctx, config.PrivateZoneName)
	if err != nil {
		pctx.Observer.Warnf("[%s] Could not verify DNS records in %s: %v", phase, config.PrivateZoneName, err)
		return nil
	}
	if count == 0 {
		pctx.Observer.Warnf("[%s] Zone %s has no A records yet; propagation is still in flight", phase, config.PrivateZoneName)
	} else {
		pctx.Observer.Printf("[%s] Zone %s carries %d A record(s)", phase, config.PrivateZoneName, count)
	}
	return nil
}

// resolveServerID resolves the ARM ID the private endpoint targets. The
// server was found or created earlier in this phase; an empty ID here means
// the control plane lost it between steps, which no retry of ours can fix.
func (p *Provisioner) resolveServerID(ctx *provisioning.Context) (string, error) {
	if ctx.State.Server == nil {
		return "", &provisioning.ResolutionError{
			Resource: "database server",
			Err:      fmt.Errorf("no server recorded in provisioning state"),
		}
	}
	if ctx.State.Server.ID != "" {
		return ctx.State.Server.ID, nil
	}

	id, err := ctx.Azure.ServerID(ctx, ctx.State.Server.Name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve ID of server %s: %w", ctx.State.Server.Name, err)
	}
	if id == "" {
		return "", &provisioning.ResolutionError{
			Resource: ctx.State.Server.Name,
			Err:      fmt.Errorf("server exists but its ID could not be resolved"),
		}
	}
	ctx.State.Server.ID = id
	return id, nil
}
