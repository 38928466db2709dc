package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/privatedns/armprivatedns"

	"github.com/netfabric/hubnet/internal/util/retry"
)

// EnsurePrivateEndpoint creates the private endpoint for the database server
// if absent. targetID must be the server's resolved ARM ID; callers are
// responsible for never passing an empty target.
func (c *RealClient) EnsurePrivateEndpoint(ctx context.Context, name, subnetID, targetID string) error {
	_, err := (&EnsureOperation[armnetwork.PrivateEndpoint]{
		Name:         name,
		ResourceType: "private endpoint",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armnetwork.PrivateEndpoint, bool, error) {
			resp, err := c.endpoints.Get(ctx, c.resourceGroup, name, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.PrivateEndpoint{}, false, nil
				}
				return armnetwork.PrivateEndpoint{}, false, err
			}
			return resp.PrivateEndpoint, true, nil
		},
		Create: func(ctx context.Context) (armnetwork.PrivateEndpoint, error) {
			poller, err := c.endpoints.BeginCreateOrUpdate(ctx, c.resourceGroup, name, armnetwork.PrivateEndpoint{
				Location: to.Ptr(c.location),
				Properties: &armnetwork.PrivateEndpointProperties{
					Subnet: &armnetwork.Subnet{ID: to.Ptr(subnetID)},
					PrivateLinkServiceConnections: []*armnetwork.PrivateLinkServiceConnection{
						{
							Name: to.Ptr(name),
							Properties: &armnetwork.PrivateLinkServiceConnectionProperties{
								PrivateLinkServiceID: to.Ptr(targetID),
								GroupIDs:             []*string{to.Ptr("postgresqlServer")},
							},
						},
					},
				},
			}, nil)
			if err != nil {
				return armnetwork.PrivateEndpoint{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armnetwork.PrivateEndpoint{}, err
			}
			return resp.PrivateEndpoint, nil
		},
	}).Execute(ctx)
	return err
}

// PrivateEndpointIP returns the endpoint's resolved private address, or ""
// while the connection is still being approved.
func (c *RealClient) PrivateEndpointIP(ctx context.Context, name string) (string, error) {
	resp, err := c.endpoints.Get(ctx, c.resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get private endpoint %s: %w", name, err)
	}
	if resp.Properties == nil {
		return "", nil
	}
	for _, dns := range resp.Properties.CustomDNSConfigs {
		for _, ip := range dns.IPAddresses {
			if ip != nil && *ip != "" {
				return *ip, nil
			}
		}
	}
	return "", nil
}

// EnsurePrivateZone creates the private DNS zone if absent and returns its
// ARM ID. Private DNS zones are global resources.
func (c *RealClient) EnsurePrivateZone(ctx context.Context, zoneName string) (string, error) {
	zone, err := (&EnsureOperation[armprivatedns.PrivateZone]{
		Name:         zoneName,
		ResourceType: "private DNS zone",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armprivatedns.PrivateZone, bool, error) {
			resp, err := c.zones.Get(ctx, c.resourceGroup, zoneName, nil)
			if err != nil {
				if IsNotFound(err) {
					return armprivatedns.PrivateZone{}, false, nil
				}
				return armprivatedns.PrivateZone{}, false, err
			}
			return resp.PrivateZone, true, nil
		},
		Create: func(ctx context.Context) (armprivatedns.PrivateZone, error) {
			poller, err := c.zones.BeginCreateOrUpdate(ctx, c.resourceGroup, zoneName, armprivatedns.PrivateZone{
				Location: to.Ptr("global"),
			}, nil)
			if err != nil {
				return armprivatedns.PrivateZone{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armprivatedns.PrivateZone{}, err
			}
			return resp.PrivateZone, nil
		},
	}).Execute(ctx)
	if err != nil {
		return "", err
	}
	if zone.ID == nil {
		return "", fmt.Errorf("private DNS zone %s has no ID", zoneName)
	}
	return *zone.ID, nil
}

// EnsureZoneLink links a virtual network to the private DNS zone. Links are
// resolution-only: registration is explicitly disabled so workloads cannot
// publish records into the zone.
func (c *RealClient) EnsureZoneLink(ctx context.Context, zoneName, linkName, vnetID string) error {
	_, err := (&EnsureOperation[armprivatedns.VirtualNetworkLink]{
		Name:         linkName,
		ResourceType: "DNS zone link",
		Policy:       CreateIfAbsent,
		Get: func(ctx context.Context) (armprivatedns.VirtualNetworkLink, bool, error) {
			resp, err := c.zoneLinks.Get(ctx, c.resourceGroup, zoneName, linkName, nil)
			if err != nil {
				if IsNotFound(err) {
					return armprivatedns.VirtualNetworkLink{}, false, nil
				}
				return armprivatedns.VirtualNetworkLink{}, false, err
			}
			return resp.VirtualNetworkLink, true, nil
		},
		Create: func(ctx context.Context) (armprivatedns.VirtualNetworkLink, error) {
			poller, err := c.zoneLinks.BeginCreateOrUpdate(ctx, c.resourceGroup, zoneName, linkName, armprivatedns.VirtualNetworkLink{
				Location: to.Ptr("global"),
				Properties: &armprivatedns.VirtualNetworkLinkProperties{
					RegistrationEnabled: to.Ptr(false),
					VirtualNetwork:      &armprivatedns.SubResource{ID: to.Ptr(vnetID)},
				},
			}, nil)
			if err != nil {
				return armprivatedns.VirtualNetworkLink{}, err
			}
			resp, err := poller.PollUntilDone(ctx, nil)
			if err != nil {
				return armprivatedns.VirtualNetworkLink{}, err
			}
			return resp.VirtualNetworkLink, nil
		},
	}).Execute(ctx)
	return err
}

// RecreateZoneGroup binds the private endpoint to the DNS zone. Policy is
// create-or-replace: an existing group is always dropped and recreated so no
// stale binding survives a re-run. The delete is retried under the bounded
// backoff because the endpoint may briefly hold a lock on the group.
func (c *RealClient) RecreateZoneGroup(ctx context.Context, endpointName, groupName, zoneID string) error {
	put := func(ctx context.Context) (armnetwork.PrivateDNSZoneGroup, error) {
		poller, err := c.zoneGroups.BeginCreateOrUpdate(ctx, c.resourceGroup, endpointName, groupName, armnetwork.PrivateDNSZoneGroup{
			Properties: &armnetwork.PrivateDNSZoneGroupPropertiesFormat{
				PrivateDNSZoneConfigs: []*armnetwork.PrivateDNSZoneConfig{
					{
						Name: to.Ptr(groupName),
						Properties: &armnetwork.PrivateDNSZonePropertiesFormat{
							PrivateDNSZoneID: to.Ptr(zoneID),
						},
					},
				},
			},
		}, nil)
		if err != nil {
			return armnetwork.PrivateDNSZoneGroup{}, err
		}
		resp, err := poller.PollUntilDone(ctx, nil)
		if err != nil {
			return armnetwork.PrivateDNSZoneGroup{}, err
		}
		return resp.PrivateDNSZoneGroup, nil
	}

	_, err := (&EnsureOperation[armnetwork.PrivateDNSZoneGroup]{
		Name:         groupName,
		ResourceType: "DNS zone group",
		Policy:       CreateOrReplace,
		Get: func(ctx context.Context) (armnetwork.PrivateDNSZoneGroup, bool, error) {
			resp, err := c.zoneGroups.Get(ctx, c.resourceGroup, endpointName, groupName, nil)
			if err != nil {
				if IsNotFound(err) {
					return armnetwork.PrivateDNSZoneGroup{}, false, nil
				}
				return armnetwork.PrivateDNSZoneGroup{}, false, err
			}
			return resp.PrivateDNSZoneGroup, true, nil
		},
		Create: put,
		Delete: func(ctx context.Context, _ armnetwork.PrivateDNSZoneGroup) error {
			ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
			defer cancel()
			return retry.Do(ctx, func() error {
				poller, err := c.zoneGroups.BeginDelete(ctx, c.resourceGroup, endpointName, groupName, nil)
				if err != nil {
					if IsConflict(err) {
						return err
					}
					return retry.Fatal(err)
				}
				if _, err := poller.PollUntilDone(ctx, nil); err != nil {
					return retry.Fatal(err)
				}
				return nil
			},
				retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
				retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
		},
	}).Execute(ctx)
	return err
}

// ZoneRecordCount returns the number of address record sets resolved in the
// zone. Used only for post-creation verification; zero is not an error.
func (c *RealClient) ZoneRecordCount(ctx context.Context, zoneName string) (int, error) {
	count := 0
	pager := c.records.NewListPager(c.resourceGroup, zoneName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to list records in zone %s: %w", zoneName, err)
		}
		for _, rs := range page.Value {
			if rs.Properties != nil && len(rs.Properties.ARecords) > 0 {
				count++
			}
		}
	}
	return count, nil
}
