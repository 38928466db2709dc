package infrastructure

import (
	"context"
	"fmt"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/util/naming"
)

// ProvisionFirewall ensures the hub firewall and waits for its private
// address. The create call returns before the address is assigned; the
// confirmed address is recorded in state so no later step references an
// unconfirmed value.
func (p *Provisioner) ProvisionFirewall(pctx *provisioning.Context) error {
	name := naming.Firewall(pctx.Config.Prefix)
	hub := pctx.Config.Hub.Name

	subnetID := pctx.State.SubnetID(hub, config.FirewallSubnetName)
	if subnetID == "" {
		return fmt.Errorf("firewall subnet %s/%s has not been provisioned", hub, config.FirewallSubnetName)
	}

	pctx.Observer.Printf("[%s] Reconciling firewall %s...", phase, name)
	if err := pctx.Azure.EnsureFirewall(pctx, name, subnetID, pctx.State.PublicIPIDs[serviceFirewall]); err != nil {
		return fmt.Errorf("failed to ensure firewall %s: %w", name, err)
	}

	pctx.Observer.Printf("[%s] Waiting for firewall %s private address...", phase, name)
	ip, err := azure.WaitForAttribute(pctx, name, "private IP address",
		func(ctx context.Context) (string, error) {
			return pctx.Azure.FirewallPrivateIP(ctx, name)
		}, pctx.WaitConfig())
	if err != nil {
		return err
	}

	pctx.State.FirewallPrivateIP = ip
	pctx.Observer.Printf("[%s] Firewall %s private address: %s", phase, name, ip)
	return nil
}

// ProvisionGatewayServices ensures the VPN gateway and bastion host on their
// reserved subnets. Neither exposes an attribute any later step consumes, so
// nothing is polled here.
func (p *Provisioner) ProvisionGatewayServices(ctx *provisioning.Context) error {
	hub := ctx.Config.Hub.Name

	gwName := naming.VPNGateway(ctx.Config.Prefix)
	ctx.Observer.Printf("[%s] Reconciling VPN gateway %s...", phase, gwName)
	gwSubnet := ctx.State.SubnetID(hub, config.GatewaySubnetName)
	if err := ctx.Azure.EnsureVPNGateway(ctx, gwName, gwSubnet, ctx.State.PublicIPIDs[serviceGateway]); err != nil {
		return fmt.Errorf("failed to ensure VPN gateway %s: %w", gwName, err)
	}

	bastionName := naming.Bastion(ctx.Config.Prefix)
	ctx.Observer.Printf("[%s] Reconciling bastion host %s...", phase, bastionName)
	bastionSubnet := ctx.State.SubnetID(hub, config.BastionSubnetName)
	if err := ctx.Azure.EnsureBastion(ctx, bastionName, bastionSubnet, ctx.State.PublicIPIDs[serviceBastion]); err != nil {
		return fmt.Errorf("failed to ensure bastion host %s: %w", bastionName, err)
	}

	return nil
}
