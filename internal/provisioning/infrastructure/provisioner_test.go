package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
)

func testContext(t *testing.T, mock *azure.MockClient) *provisioning.Context {
	t.Helper()
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := provisioning.NewContext(context.Background(), cfg, mock)
	ctx.Timeouts.PollInterval = time.Millisecond
	ctx.Timeouts.PollMaxWait = 10 * time.Millisecond
	return ctx
}

func indexOf(calls []string, call string) int {
	for i, c := range calls {
		if c == call {
			return i
		}
	}
	return -1
}

func TestProvisioner_Name(t *testing.T) {
	assert.Equal(t, "infrastructure", NewProvisioner().Name())
}

func TestProvisionNetworks_RecordsState(t *testing.T) {
	mock := &azure.MockClient{}
	ctx := testContext(t, mock)

	require.NoError(t, NewProvisioner().ProvisionNetworks(ctx))

	assert.Len(t, ctx.State.VNetIDs, 3)
	assert.NotEmpty(t, ctx.State.VNetIDs["hubnet-vnet-hub"])
	assert.NotEmpty(t, ctx.State.SubnetID("hubnet-vnet-hub", "AzureFirewallSubnet"))
	assert.NotEmpty(t, ctx.State.SubnetID("hubnet-vnet-spoke-prod", "snet-workload"))
}

func TestProvisionFirewall_WaitsForPrivateIP(t *testing.T) {
	probes := 0
	mock := &azure.MockClient{
		FirewallPrivateIPFunc: func(_ context.Context, _ string) (string, error) {
			probes++
			if probes < 3 {
				return "", nil
			}
			return "10.0.1.4", nil
		},
	}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionNetworks(ctx))
	require.NoError(t, p.ProvisionPublicIPs(ctx))
	require.NoError(t, p.ProvisionFirewall(ctx))

	assert.Equal(t, "10.0.1.4", ctx.State.FirewallPrivateIP)
	assert.Equal(t, 3, probes, "the wait keeps probing until the address appears")
}

func TestProvisionFirewall_RequiresSubnet(t *testing.T) {
	ctx := testContext(t, &azure.MockClient{})

	err := NewProvisioner().ProvisionFirewall(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AzureFirewallSubnet")
}

func TestProvisionPeerings_AsymmetricGatewayTransit(t *testing.T) {
	configs := make(map[string]azure.PeeringConfig)
	mock := &azure.MockClient{
		EnsurePeeringFunc: func(_ context.Context, vnetName, peeringName, remoteVNetID string, cfg azure.PeeringConfig) error {
			assert.NotEmpty(t, remoteVNetID)
			configs[peeringName] = cfg
			return nil
		},
	}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionNetworks(ctx))
	require.NoError(t, p.ProvisionPeerings(ctx))

	// Two records per spoke.
	require.Len(t, configs, 4)

	hubSide := configs["peer-hubnet-vnet-hub-to-hubnet-vnet-spoke-prod"]
	assert.True(t, hubSide.AllowGatewayTransit, "hub side offers its gateway")
	assert.False(t, hubSide.UseRemoteGateways)
	assert.True(t, hubSide.AllowForwardedTraffic)

	spokeSide := configs["peer-hubnet-vnet-spoke-prod-to-hubnet-vnet-hub"]
	assert.False(t, spokeSide.AllowGatewayTransit, "spoke side never offers a gateway")
	assert.True(t, spokeSide.AllowForwardedTraffic)
}

func TestProvisionRouting_SameRouteOnEverySpoke(t *testing.T) {
	nextHops := make(map[string]string)
	mock := &azure.MockClient{
		EnsureDefaultRouteFunc: func(_ context.Context, routeTableName, routeName, nextHopIP string) error {
			assert.Equal(t, "default-via-firewall", routeName)
			nextHops[routeTableName] = nextHopIP
			return nil
		},
	}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionNetworks(ctx))
	require.NoError(t, p.ProvisionRouting(ctx))

	require.Len(t, nextHops, 2)
	assert.Equal(t, "10.0.1.4", nextHops["hubnet-rt-prod"])
	assert.Equal(t, "10.0.1.4", nextHops["hubnet-rt-nonprod"])

	assert.Contains(t, mock.Calls, "AssociateRouteTable(hubnet-vnet-spoke-prod/snet-workload)")
	assert.Contains(t, mock.Calls, "AssociateRouteTable(hubnet-vnet-spoke-nonprod/snet-workload)")
}

func TestProvisionRouting_ResolvesFirewallIPFirst(t *testing.T) {
	mock := &azure.MockClient{}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionNetworks(ctx))
	// A pre-recorded address from an earlier phase is not trusted.
	ctx.State.FirewallPrivateIP = "10.9.9.9"

	require.NoError(t, p.ProvisionRouting(ctx))

	probe := indexOf(mock.Calls, "FirewallPrivateIP(hubnet-fw)")
	firstRoute := indexOf(mock.Calls, "EnsureRouteTable(hubnet-rt-prod)")
	require.GreaterOrEqual(t, probe, 0)
	require.GreaterOrEqual(t, firstRoute, 0)
	assert.Less(t, probe, firstRoute, "the address is confirmed before any route exists")
	assert.Equal(t, "10.0.1.4", ctx.State.FirewallPrivateIP)
}

func TestProvision_DependencyOrder(t *testing.T) {
	mock := &azure.MockClient{}
	ctx := testContext(t, mock)

	require.NoError(t, NewProvisioner().Provision(ctx))

	calls := mock.Calls
	vnet := indexOf(calls, "EnsureVirtualNetwork(hubnet-vnet-hub)")
	pip := indexOf(calls, "EnsurePublicIP(hubnet-pip-firewall)")
	fw := indexOf(calls, "EnsureFirewall(hubnet-fw)")
	fwIP := indexOf(calls, "FirewallPrivateIP(hubnet-fw)")
	gw := indexOf(calls, "EnsureVPNGateway(hubnet-vpngw)")
	peer := indexOf(calls, "EnsurePeering(hubnet-vnet-hub/peer-hubnet-vnet-hub-to-hubnet-vnet-spoke-prod)")
	route := indexOf(calls, "EnsureDefaultRoute(hubnet-rt-prod/default-via-firewall)")

	for name, idx := range map[string]int{
		"vnet": vnet, "pip": pip, "fw": fw, "fwIP": fwIP, "gw": gw, "peer": peer, "route": route,
	} {
		require.GreaterOrEqual(t, idx, 0, "missing call: %s", name)
	}

	assert.Less(t, vnet, fw)
	assert.Less(t, pip, fw)
	assert.Less(t, fw, fwIP)
	assert.Less(t, fwIP, gw)
	assert.Less(t, gw, peer)
	assert.Less(t, peer, route)
}
