package infrastructure

import (
	"context"
	"fmt"

	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/util/naming"
)

const defaultRouteName = "default-via-firewall"

// ProvisionRouting forces every spoke's egress through the hub firewall.
//
// The firewall's private address is re-resolved through the poller here even
// though ProvisionFirewall records it, because the firewall may predate this
// run entirely. A route pointing at an empty next-hop silently black-holes
// traffic, so no route is written before the address is confirmed. The
// identical route goes onto every spoke: asymmetric coverage is a bug, not a
// valid intermediate state.
func (p *Provisioner) ProvisionRouting(pctx *provisioning.Context) error {
	fwName := naming.Firewall(pctx.Config.Prefix)

	fwIP, err := azure.WaitForAttribute(pctx, fwName, "private IP address",
		func(ctx context.Context) (string, error) {
			return pctx.Azure.FirewallPrivateIP(ctx, fwName)
		}, pctx.WaitConfig())
	if err != nil {
		return err
	}
	pctx.State.FirewallPrivateIP = fwIP

	for _, spoke := range pctx.Config.Spokes {
		rtName := naming.RouteTable(pctx.Config.Prefix, spoke.Key)
		pctx.Observer.Printf("[%s] Reconciling route table %s...", phase, rtName)

		rtID, err := pctx.Azure.EnsureRouteTable(pctx, rtName)
		if err != nil {
			return fmt.Errorf("failed to ensure route table %s: %w", rtName, err)
		}

		if err := pctx.Azure.EnsureDefaultRoute(pctx, rtName, defaultRouteName, fwIP); err != nil {
			return fmt.Errorf("failed to ensure default route on %s: %w", rtName, err)
		}

		workload := spoke.WorkloadSubnet()
		if err := pctx.Azure.AssociateRouteTable(pctx, spoke.Network.Name, workload.Name, rtID); err != nil {
			return fmt.Errorf("failed to associate route table %s with %s/%s: %w",
				rtName, spoke.Network.Name, workload.Name, err)
		}

		pctx.Observer.Printf("[%s] Spoke %s egress now transits the firewall at %s", phase, spoke.Key, fwIP)
	}
	return nil
}
