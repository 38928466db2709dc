package infrastructure

import (
	"fmt"

	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/util/naming"
)

// ProvisionNetworks ensures every virtual network and its subnets. The
// reserved-name subnets (AzureFirewallSubnet, GatewaySubnet,
// AzureBastionSubnet) are created here, before the services that bind to
// them.
func (p *Provisioner) ProvisionNetworks(ctx *provisioning.Context) error {
	for _, network := range ctx.Config.Networks() {
		ctx.Observer.Printf("[%s] Reconciling network %s (%s)...", phase, network.Name, network.CIDR)

		id, err := ctx.Azure.EnsureVirtualNetwork(ctx, network.Name, network.CIDR)
		if err != nil {
			return fmt.Errorf("failed to ensure network %s: %w", network.Name, err)
		}
		ctx.State.VNetIDs[network.Name] = id

		for _, subnet := range network.Subnets {
			subnetID, err := ctx.Azure.EnsureSubnet(ctx, network.Name, subnet.Name, subnet.Prefix)
			if err != nil {
				return fmt.Errorf("failed to ensure subnet %s/%s: %w", network.Name, subnet.Name, err)
			}
			ctx.State.SetSubnetID(network.Name, subnet.Name, subnetID)
		}
	}
	return nil
}

// ProvisionPublicIPs ensures the address holders for the firewall, VPN
// gateway and bastion. They carry no dependencies on each other but must all
// exist before the services that attach them.
func (p *Provisioner) ProvisionPublicIPs(ctx *provisioning.Context) error {
	for _, service := range []string{serviceFirewall, serviceGateway, serviceBastion} {
		name := naming.PublicIP(ctx.Config.Prefix, service)
		ctx.Observer.Printf("[%s] Reconciling public IP %s...", phase, name)

		id, err := ctx.Azure.EnsurePublicIP(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to ensure public IP %s: %w", name, err)
		}
		ctx.State.PublicIPIDs[service] = id
	}
	return nil
}
