package database

import (
	"context"
	"errors"
	"strings"
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
	ctx.State.AdminPassword = "s3cret"

	// Infrastructure results this phase depends on.
	ctx.State.VNetIDs["hubnet-vnet-hub"] = "/mock/virtualNetworks/hubnet-vnet-hub"
	ctx.State.VNetIDs["hubnet-vnet-spoke-prod"] = "/mock/virtualNetworks/hubnet-vnet-spoke-prod"
	ctx.State.VNetIDs["hubnet-vnet-spoke-nonprod"] = "/mock/virtualNetworks/hubnet-vnet-spoke-nonprod"
	ctx.State.SetSubnetID("hubnet-vnet-hub", "snet-database", "/mock/subnets/snet-database")
	return ctx
}

func TestProvisioner_Name(t *testing.T) {
	assert.Equal(t, "database", NewProvisioner().Name())
}

func TestProvisionServer_AdoptsExisting(t *testing.T) {
	existing := &azure.ServerInfo{
		Name: "hubnet-pg-1700000000",
		ID:   "/mock/flexibleServers/hubnet-pg-1700000000",
		FQDN: "hubnet-pg-1700000000.postgres.database.azure.com",
	}
	mock := &azure.MockClient{
		FindServerByPrefixFunc: func(_ context.Context, prefix string) (*azure.ServerInfo, error) {
			assert.Equal(t, "hubnet-pg-", prefix)
			return existing, nil
		},
	}
	ctx := testContext(t, mock)

	require.NoError(t, NewProvisioner().ProvisionServer(ctx))
	assert.Equal(t, existing, ctx.State.Server)

	for _, call := range mock.Calls {
		assert.False(t, strings.HasPrefix(call, "CreateServer("), "an existing server must not be recreated")
	}
}

func TestProvisionServer_CreatesWithMintedName(t *testing.T) {
	var createdName string
	mock := &azure.MockClient{
		CreateServerFunc: func(_ context.Context, name, adminUser, adminPassword string) (*azure.ServerInfo, error) {
			createdName = name
			assert.Equal(t, "hubadmin", adminUser)
			assert.Equal(t, "s3cret", adminPassword)
			return &azure.ServerInfo{Name: name, ID: "/mock/flexibleServers/" + name}, nil
		},
	}
	ctx := testContext(t, mock)

	require.NoError(t, NewProvisioner().ProvisionServer(ctx))
	assert.True(t, strings.HasPrefix(createdName, "hubnet-pg-"))
	require.NotNil(t, ctx.State.Server)
	assert.Equal(t, createdName, ctx.State.Server.Name)
}

func TestProvisionPrivateLink_FullChain(t *testing.T) {
	mock := &azure.MockClient{}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionServer(ctx))
	require.NoError(t, p.ProvisionPrivateLink(ctx))

	assert.Equal(t, "10.0.4.5", ctx.State.EndpointIP)

	// Every network is linked to the zone.
	links := 0
	recreates := 0
	for _, call := range mock.Calls {
		if strings.HasPrefix(call, "EnsureZoneLink(") {
			links++
		}
		if strings.HasPrefix(call, "RecreateZoneGroup(") {
			recreates++
		}
	}
	assert.Equal(t, 3, links)
	assert.Equal(t, 1, recreates, "the zone group is rebuilt exactly once per run")
}

func TestProvisionPrivateLink_UnresolvableServerID(t *testing.T) {
	mock := &azure.MockClient{
		ServerIDFunc: func(_ context.Context, _ string) (string, error) { return "", nil },
	}
	ctx := testContext(t, mock)
	ctx.State.Server = &azure.ServerInfo{Name: "hubnet-pg-1700000000"}

	err := NewProvisioner().ProvisionPrivateLink(ctx)
	require.Error(t, err)

	var res *provisioning.ResolutionError
	require.ErrorAs(t, err, &res)
	assert.Contains(t, res.Resource, "hubnet-pg-1700000000")

	for _, call := range mock.Calls {
		assert.False(t, strings.HasPrefix(call, "EnsurePrivateEndpoint("),
			"no endpoint may be created against an unresolved target")
	}
}

func TestProvisionPrivateLink_NoServerInState(t *testing.T) {
	ctx := testContext(t, &azure.MockClient{})

	err := NewProvisioner().ProvisionPrivateLink(ctx)
	var res *provisioning.ResolutionError
	require.ErrorAs(t, err, &res)
}

func TestProvisionPrivateLink_EmptyZoneIsWarningOnly(t *testing.T) {
	mock := &azure.MockClient{
		ZoneRecordCountFunc: func(_ context.Context, _ string) (int, error) { return 0, nil },
	}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionServer(ctx))
	require.NoError(t, p.ProvisionPrivateLink(ctx), "lagging DNS propagation must not fail the run")
}

func TestProvisionPrivateLink_ZoneCountErrorIsWarningOnly(t *testing.T) {
	mock := &azure.MockClient{
		ZoneRecordCountFunc: func(_ context.Context, _ string) (int, error) {
			return 0, errors.New("listing failed")
		},
	}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionServer(ctx))
	require.NoError(t, p.ProvisionPrivateLink(ctx))
}

func TestProvisionPrivateLink_ZoneGroupFailureIsFatal(t *testing.T) {
	sentinel := errors.New("endpoint busy")
	mock := &azure.MockClient{
		RecreateZoneGroupFunc: func(_ context.Context, _, _, _ string) error { return sentinel },
	}
	ctx := testContext(t, mock)

	p := NewProvisioner()
	require.NoError(t, p.ProvisionServer(ctx))
	err := p.ProvisionPrivateLink(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}
