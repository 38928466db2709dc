package infrastructure

import (
	"fmt"

	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/util/naming"
)

// ProvisionPeerings writes both directional peering records for every
// hub<->spoke pair. The pair is asymmetric by design: only the hub side
// offers gateway transit, because only the hub owns the shared gateway.
// Traffic flows only once both records exist.
func (p *Provisioner) ProvisionPeerings(ctx *provisioning.Context) error {
	hub := ctx.Config.Hub.Name
	hubID := ctx.State.VNetIDs[hub]

	for _, spoke := range ctx.Config.Spokes {
		spokeName := spoke.Network.Name
		spokeID := ctx.State.VNetIDs[spokeName]

		hubToSpoke := naming.Peering(hub, spokeName)
		ctx.Observer.Printf("[%s] Reconciling peering %s...", phase, hubToSpoke)
		err := ctx.Azure.EnsurePeering(ctx, hub, hubToSpoke, spokeID, azure.PeeringConfig{
			AllowVirtualNetworkAccess: true,
			AllowForwardedTraffic:     true,
			AllowGatewayTransit:       true,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure peering %s: %w", hubToSpoke, err)
		}

		spokeToHub := naming.Peering(spokeName, hub)
		ctx.Observer.Printf("[%s] Reconciling peering %s...", phase, spokeToHub)
		err = ctx.Azure.EnsurePeering(ctx, spokeName, spokeToHub, hubID, azure.PeeringConfig{
			AllowVirtualNetworkAccess: true,
			AllowForwardedTraffic:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure peering %s: %w", spokeToHub, err)
		}
	}
	return nil
}
