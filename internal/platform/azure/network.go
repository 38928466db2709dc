package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

// VirtualNetworkExists probes for a virtual network by name.
func (c *RealClient) VirtualNetworkExists(ctx context.Context, name string) (bool, error) {
	_, err := c.vnets.Get(ctx, c.resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get virtual network %s: %w", name, err)
	}
	return true, nil
}

// EnsureVirtualNetwork creates the network if absent and returns its ARM ID.
// An existing network is left untouched.
func (c *RealClient) EnsureVirtualNetwork(ctx context.Context, name, cidr string) (string, error) {
	vnet, err := (&EnsureOperation[armnetwork.VirtualNetwork]{
		Name:         name,
		ResourceType: "virtual network",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.VirtualNetwork, bool, error) {
			resp, err := c.vnets.Get(ctx, c.resourceGroup, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.VirtualNetwork{}, false, nil
				}
				return armnetwork.VirtualNetwork{}, false, err
			}
			return resp.VirtualNetwork, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.VirtualNetwork, error) {
			poller, err := c.vnets.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.VirtualNetwork{
				Location: to.Ptr(c.location),
				Properties: &armnetwork.VirtualNetworkPropertiesFormat{
					AddressSpace: &armnetwork.AddressSpace{
						AddressPrefixes: []*string{to.Ptr(cidr)},
					},
				},
			}, nil)
			if err != nil {
				return armnetwork.VirtualNetwork{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.VirtualNetwork{}, err
			}
			return resp.VirtualNetwork, nil
		},
	}).Execute(ctx)
	if err != nil {
		return "", err
	}
	if vnet.ID == nil {
		return "", fmt.Errorf("virtual network %s has no ID", name)
	}
	return *vnet.ID, nil
}

// EnsureSubnet creates the subnet if absent and returns its ARM ID. Reserved
// subnet names (AzureFirewallSubnet, GatewaySubnet, AzureBastionSubnet) are
// passed through verbatim; the dependent services require them exactly.
func (c *RealClient) EnsureSubnet(ctx context.Context, vnetName, name, prefix string) (string, error) {
	subnet, err := (&EnsureOperation[armnetwork.Subnet]{
		Name:         name,
		ResourceType: "subnet",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.Subnet, bool, error) {
			resp, err := c.subnets.Get(ctx, c.resourceGroup, vnetName, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.Subnet{}, false, nil
				}
				return armnetwork.Subnet{}, false, err
			}
			return resp.Subnet, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.Subnet, error) {
			poller, err := c.subnets.BeginCreateOrUpdate(ctx, c.resourceGroup, vnetName, name, armnetwork.Subnet{
				Properties: &armnetwork.SubnetPropertiesFormat{
					AddressPrefix: to.Ptr(prefix),
				},
			}, nil)
			if err != nil {
				return armnetwork.Subnet{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.Subnet{}, err
			}
			return resp.Subnet, nil
		},
	}).Execute(ctx)
	if err != nil {
		return "", err
	}
	if subnet.ID == nil {
		return "", fmt.Errorf("subnet %s/%s has no ID", vnetName, name)
	}
	return *subnet.ID, nil
}

// AssociateRouteTable binds a route table to a subnet. The association is a
// PUT of the fetched subnet with the route table reference set, so re-running
// it against an already-associated subnet is a no-op rewrite.
func (c *RealClient) AssociateRouteTable(ctx context.Context, vnetName, subnetName, routeTableID string) error {
	resp, err := c.subnets.Get(ctx, c.resourceGroup, vnetName, subnetName, nil)
	if err != nil {
		return fmt.Errorf("failed to get subnet %s/%s: %w", vnetName, subnetName, err)
	}

	subnet := resp.Subnet
	if subnet.Properties == nil {
		subnet.Properties = &armnetwork.SubnetPropertiesFormat{}
	}
	subnet.Properties.RouteTable = &armnetwork.RouteTable{ID: to.Ptr(routeTableID)}

	poller, err := c.subnets.BeginCreateOrUpdate(ctx, c.resourceGroup, vnetName, subnetName, subnet, nil)
	if err != nil {
		return fmt.Errorf("failed to associate route table with %s/%s: %w", vnetName, subnetName, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to wait for route table association on %s/%s: %w", vnetName, subnetName, err)
	}
	return nil
}

// EnsurePublicIP creates a static standard-SKU public IP if absent and
// returns its ARM ID.
func (c *RealClient) EnsurePublicIP(ctx context.Context, name string) (string, error) {
	pip, err := (&EnsureOperation[armnetwork.PublicIPAddress]{
		Name:         name,
		ResourceType: "public IP",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.PublicIPAddress, bool, error) {
			resp, err := c.publicIPs.Get(ctx, c.resourceGroup, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.PublicIPAddress{}, false, nil
				}
				return armnetwork.PublicIPAddress{}, false, err
			}
			return resp.PublicIPAddress, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.PublicIPAddress, error) {
			poller, err := c.publicIPs.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.PublicIPAddress{
				Location: to.Ptr(c.location),
				SKU: &armnetwork.PublicIPAddressSKU{
					Name: to.Ptr(armnetwork.PublicIPAddressSKUNameStandard),
				},
				Properties: &armnetwork.PublicIPAddressPropertiesFormat{
					PublicIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodStatic),
				},
			}, nil)
			if err != nil {
				return armnetwork.PublicIPAddress{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.PublicIPAddress{}, err
			}
			return resp.PublicIPAddress, nil
		},
	}).Execute(ctx)
	if err != nil {
		return "", err
	}
	if pip.ID == nil {
		return "", fmt.Errorf("public IP %s has no ID", name)
	}
	return *pip.ID, nil
}
