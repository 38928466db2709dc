package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

// EnsureRouteTable creates the route table if absent and returns its ARM ID.
// BGP propagation is disabled so the default route cannot be shadowed by
// learned routes.
func (c *RealClient) EnsureRouteTable(ctx context.Context, name string) (string, error) {
	rt, err := (&EnsureOperation[armnetwork.RouteTable]{
		Name:         name,
		ResourceType: "route table",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.RouteTable, bool, error) {
			resp, err := c.routeTables.Get(ctx, c.resourceGroup, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.RouteTable{}, false, nil
				}
				return armnetwork.RouteTable{}, false, err
			}
			return resp.RouteTable, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.RouteTable, error) {
			poller, err := c.routeTables.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.RouteTable{
				Location: to.Ptr(c.location),
				Properties: &armnetwork.RouteTablePropertiesFormat{
					DisableBgpRoutePropagation: to.Ptr(true),
				},
			}, nil)
			if err != nil {
				return armnetwork.RouteTable{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.RouteTable{}, err
			}
			return resp.RouteTable, nil
		},
	}).Execute(ctx)
	if err != nil {
		return "", err
	}
	if rt.ID == nil {
		return "", fmt.Errorf("route table %s has no ID", name)
	}
	return *rt.ID, nil
}

// EnsureDefaultRoute writes the 0.0.0.0/0 route through the firewall. Policy
// is create-or-update: an existing route with a stale next-hop must be
// rewritten to the canonical target, not left in place.
func (c *RealClient) EnsureDefaultRoute(ctx context.Context, routeTableName, routeName, nextHopIP string) error {
	put := func(ctx context.Context) (armnetwork.Route, error) {
		poller, err := c.routes.BeginCreateOrUpdate(ctx, c.resourceGroup, routeTableName, routeName, armnetwork.Route{
			Properties: &armnetwork.RoutePropertiesFormat{
				AddressPrefix:    to.Ptr("0.0.0.0/0"),
				NextHopType:      to.Ptr(armnetwork.RouteNextHopTypeVirtualAppliance),
				NextHopIPAddress: to.Ptr(nextHopIP),
			},
		}, nil)
		if err != nil {
			return armnetwork.Route{}, err
		}
		resp, err := poller.PollUntilDone(ctx, nil)
		if err != nil {
			return armnetwork.Route{}, err
		}
		return resp.Route, nil
	}

	_, err := (&EnsureOperation[armnetwork.Route]{
		Name:         routeName,
		ResourceType: "route",
		Policy:       CreateOrUpdate,
		Get: func(ctx context.Context) (armnetwork.Route, bool, error) {
			resp, err := c.routes.Get(ctx, c.resourceGroup, routeTableName, routeName, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.Route{}, false, nil
				}
				return armnetwork.Route{}, false, err
			}
			return resp.Route, true, nil
		},
		Create: put,
		Update: func(ctx context.Context, _ armnetwork.Route) (armnetwork.Route, error) {
			return put(ctx)
		},
	}).Execute(ctx)
	return err
}

// EnsurePeering writes one directional peering record. Policy is
// create-or-update so attribute changes (gateway transit, forwarded traffic)
// converge on re-run.
func (c *RealClient) EnsurePeering(ctx context.Context, vnetName, peeringName, remoteVNetID string, cfg PeeringConfig) error {
	put := func(ctx context.Context) (armnetwork.VirtualNetworkPeering, error) {
		poller, err := c.peerings.BeginCreateOrUpdate(ctx, c.resourceGroup, vnetName, peeringName, armnetwork.VirtualNetworkPeering{
			Properties: &armnetwork.VirtualNetworkPeeringPropertiesFormat{
				AllowVirtualNetworkAccess: to.Ptr(cfg.AllowVirtualNetworkAccess),
				AllowForwardedTraffic:     to.Ptr(cfg.AllowForwardedTraffic),
				AllowGatewayTransit:       to.Ptr(cfg.AllowGatewayTransit),
				UseRemoteGateways:         to.Ptr(cfg.UseRemoteGateways),
				RemoteVirtualNetwork:      &armnetwork.SubResource{ID: to.Ptr(remoteVNetID)},
			},
		}, nil)
		if err != nil {
			return armnetwork.VirtualNetworkPeering{}, err
		}
		resp, err := poller.PollUntilDone(ctx, nil)
		if err != nil {
			return armnetwork.VirtualNetworkPeering{}, err
		}
		return resp.VirtualNetworkPeering, nil
	}

	_, err := (&EnsureOperation[armnetwork.VirtualNetworkPeering]{
		Name:         peeringName,
		ResourceType: "peering",
		Policy:       CreateOrUpdate,
		Get: func(ctx context.Context) (armnetwork.VirtualNetworkPeering, bool, error) {
			resp, err := c.peerings.Get(ctx, c.resourceGroup, vnetName, peeringName, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.VirtualNetworkPeering{}, false, nil
				}
				return armnetwork.VirtualNetworkPeering{}, false, err
			}
			return resp.VirtualNetworkPeering, true, nil
		},
		Create: put,
		Update: func(ctx context.Context, _ armnetwork.VirtualNetworkPeering) (armnetwork.VirtualNetworkPeering, error) {
			return put(ctx)
		},
	}).Execute(ctx)
	return err
}
