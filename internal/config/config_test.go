package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSubscription(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_SUBSCRIPTION_ID")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")
	t.Setenv("HUBNET_RESOURCE_GROUP", "")
	t.Setenv("HUBNET_PREFIX", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sub-123", cfg.SubscriptionID)
	assert.Equal(t, "rg-hubnet", cfg.ResourceGroup)
	assert.Equal(t, "westeurope", cfg.Location)
	assert.Equal(t, "hubnet", cfg.Prefix)
	assert.Equal(t, "hubadmin", cfg.Database.AdminUser)
	assert.False(t, cfg.AllowClientIP)

	assert.Equal(t, "hubnet-vnet-hub", cfg.Hub.Name)
	assert.Equal(t, "10.0.0.0/16", cfg.Hub.CIDR)
	require.Len(t, cfg.Spokes, 2)
	assert.Equal(t, "prod", cfg.Spokes[0].Key)
	assert.Equal(t, "nonprod", cfg.Spokes[1].Key)
}

func TestLoad_ReservedSubnetNames(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")

	cfg, err := Load()
	require.NoError(t, err)

	names := make(map[string]string)
	for _, sn := range cfg.Hub.Subnets {
		names[sn.Role] = sn.Name
	}
	assert.Equal(t, "AzureFirewallSubnet", names[RoleFirewall])
	assert.Equal(t, "GatewaySubnet", names[RoleGateway])
	assert.Equal(t, "AzureBastionSubnet", names[RoleBastion])
	assert.Equal(t, "snet-database", names[RoleDatabase])
}

func TestLoad_AllowClientIPOptIn(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")
	t.Setenv("HUBNET_ALLOW_CLIENT_IP", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AllowClientIP)
}

func TestNetworks_HubFirst(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")

	cfg, err := Load()
	require.NoError(t, err)

	nets := cfg.Networks()
	require.Len(t, nets, 3)
	assert.Equal(t, cfg.Hub.Name, nets[0].Name)
}

func TestDatabaseSubnet(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")

	cfg, err := Load()
	require.NoError(t, err)

	sn := cfg.DatabaseSubnet()
	assert.Equal(t, "snet-database", sn.Name)
	assert.Equal(t, "10.0.4.0/24", sn.Prefix)
}

func TestWorkloadSubnet(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")

	cfg, err := Load()
	require.NoError(t, err)

	sn := cfg.Spokes[0].WorkloadSubnet()
	assert.Equal(t, "snet-workload", sn.Name)
	assert.Equal(t, "10.1.1.0/24", sn.Prefix)
}
