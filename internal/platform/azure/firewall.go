package azure

import (
	"context"
	"fmt"
	"log"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

// EnsureFirewall creates the Azure Firewall if absent, bound to the reserved
// firewall subnet and a public IP. The firewall's private address is NOT
// available when this returns; callers must poll FirewallPrivateIP before
// writing routes that reference it.
func (c *RealClient) EnsureFirewall(ctx context.Context, name, subnetID, publicIPID string) error {
	_, err := (&EnsureOperation[armnetwork.AzureFirewall]{
		Name:         name,
		ResourceType: "firewall",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.AzureFirewall, bool, error) {
			resp, err := c.firewalls.Get(ctx, c.resourceGroup, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.AzureFirewall{}, false, nil
				}
				return armnetwork.AzureFirewall{}, false, err
			}
			return resp.AzureFirewall, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.AzureFirewall, error) {
			poller, err := c.firewalls.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.AzureFirewall{
				Location: to.Ptr(c.location),
				Properties: &armnetwork.AzureFirewallPropertiesFormat{
					SKU: &armnetwork.AzureFirewallSKU{
						Name: to.Ptr(armnetwork.AzureFirewallSKUNameAZFWVnet),
						Tier: to.Ptr(armnetwork.AzureFirewallSKUTierStandard),
					},
					IPConfigurations: []*armnetwork.AzureFirewallIPConfiguration{
						{
							Name: to.Ptr("fw-ipconfig"),
							Properties: &armnetwork.AzureFirewallIPConfigurationPropertiesFormat{
								Subnet:          &armnetwork.SubResource{ID: to.Ptr(subnetID)},
								PublicIPAddress: &armnetwork.SubResource{ID: to.Ptr(publicIPID)},
							},
						},
					},
				},
			}, nil)
			if err != nil {
				return armnetwork.AzureFirewall{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.AzureFirewall{}, err
			}
			return resp.AzureFirewall, nil
		},
	}).Execute(ctx)
	return err
}

// FirewallPrivateIP returns the firewall's private address, or "" while the
// control plane is still provisioning it. Transport errors propagate.
func (c *RealClient) FirewallPrivateIP(ctx context.Context, name string) (string, error) {
	resp, err := c.firewalls.Get(ctx, c.resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get firewall %s: %w", name, err)
	}
	if resp.Properties == nil {
		return "", nil
	}
	for _, ipc := range resp.Properties.IPConfigurations {
		if ipc.Properties != nil && ipc.Properties.PrivateIPAddress != nil {
			return *ipc.Properties.PrivateIPAddress, nil
		}
	}
	return "", nil
}

// EnsureVPNGateway starts creation of the VPN gateway if absent. Gateway
// provisioning takes tens of minutes and nothing downstream consumes a
// gateway attribute synchronously, so the create is not awaited.
func (c *RealClient) EnsureVPNGateway(ctx context.Context, name, subnetID, publicIPID string) error {
	_, err := c.gateways.Get(ctx, c.resourceGroup, name, nil)
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return fmt.Errorf("failed to get VPN gateway %s: %w", name, err)
	}

	_, err = c.gateways.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.VirtualNetworkGateway{
		Location: to.Ptr(c.location),
		Properties: &armnetwork.VirtualNetworkGatewayPropertiesFormat{
			GatewayType: to.Ptr(armnetwork.VirtualNetworkGatewayTypeVPN),
			VPNType:     to.Ptr(armnetwork.VPNTypeRouteBased),
			SKU: &armnetwork.VirtualNetworkGatewaySKU{
				Name: to.Ptr(armnetwork.VirtualNetworkGatewaySKUNameVPNGw1),
				Tier: to.Ptr(armnetwork.VirtualNetworkGatewaySKUTierVPNGw1),
			},
			IPConfigurations: []*armnetwork.VirtualNetworkGatewayIPConfiguration{
				{
					Name: to.Ptr("gw-ipconfig"),
					Properties: &armnetwork.VirtualNetworkGatewayIPConfigurationPropertiesFormat{
						PrivateIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodDynamic),
						Subnet:                    &armnetwork.SubResource{ID: to.Ptr(subnetID)},
						PublicIPAddress:           &armnetwork.SubResource{ID: to.Ptr(publicIPID)},
					},
				},
			},
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to start VPN gateway %s creation: %w", name, err)
	}
	log.Printf("VPN gateway %s creation started (provisioning continues in the background)", name)
	return nil
}

// EnsureBastion creates the bastion host if absent.
func (c *RealClient) EnsureBastion(ctx context.Context, name, subnetID, publicIPID string) error {
	_, err := (&EnsureOperation[armnetwork.BastionHost]{
		Name:         name,
		ResourceType: "bastion host",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.BastionHost, bool, error) {
			resp, err := c.bastions.Get(ctx, c.resourceGroup, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.BastionHost{}, false, nil
				}
				return armnetwork.BastionHost{}, false, err
			}
			return resp.BastionHost, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.BastionHost, error) {
			poller, err := c.bastions.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.BastionHost{
				Location: to.Ptr(c.location),
				Properties: &armnetwork.BastionHostPropertiesFormat{
					IPConfigurations: []*armnetwork.BastionHostIPConfiguration{
						{
							Name: to.Ptr("bastion-ipconfig"),
							Properties: &armnetwork.BastionHostIPConfigurationPropertiesFormat{
								Subnet:          &armnetwork.SubResource{ID: to.Ptr(subnetID)},
								PublicIPAddress: &armnetwork.SubResource{ID: to.Ptr(publicIPID)},
							},
						},
					},
				},
			}, nil)
			if err != nil {
				return armnetwork.BastionHost{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.BastionHost{}, err
			}
			return resp.BastionHost, nil
		},
	}).Execute(ctx)
	return err
}
