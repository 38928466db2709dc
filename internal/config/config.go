// Package config holds the immutable run configuration for hubnet.
//
// There is no configuration file: the topology (names, address ranges, roles)
// is fixed at build time and the remaining knobs (subscription, resource
// group, credentials, timeouts) come from the environment. The Config value
// is built once in Load and passed into the reconciler; nothing reads
// ambient state after that.
package config

import (
	"fmt"
	"os"

	"github.com/netfabric/hubnet/internal/util/naming"
)

// Subnet roles. Firewall, gateway and bastion subnets must carry the exact
// reserved names Azure recognizes; the dependent services refuse any other
// subnet name.
const (
	RoleFirewall = "firewall"
	RoleGateway  = "gateway"
	RoleBastion  = "bastion"
	RoleDatabase = "database"
	RoleWorkload = "workload"
)

// Reserved subnet names recognized by Azure services.
const (
	FirewallSubnetName = "AzureFirewallSubnet"
	GatewaySubnetName  = "GatewaySubnet"
	BastionSubnetName  = "AzureBastionSubnet"
)

// PrivateZoneName is the private DNS namespace for PostgreSQL private link.
const PrivateZoneName = "privatelink.postgres.database.azure.com"

// SubnetPlan describes one subnet of a network.
type SubnetPlan struct {
	Name   string
	Prefix string
	Role   string
}

// NetworkPlan describes a virtual network and its subnets.
type NetworkPlan struct {
	Name    string
	CIDR    string
	Subnets []SubnetPlan
}

// SpokePlan is a spoke network whose traffic transits the hub firewall.
type SpokePlan struct {
	// Key is the short spoke identifier used in derived names ("prod", "nonprod").
	Key     string
	Network NetworkPlan
}

// WorkloadSubnet returns the spoke subnet that carries inspected traffic.
func (s *SpokePlan) WorkloadSubnet() SubnetPlan {
	for _, sn := range s.Network.Subnets {
		if sn.Role == RoleWorkload {
			return sn
		}
	}
	return SubnetPlan{}
}

// DatabaseConfig configures the PostgreSQL flexible server and its
// administrative credential sources.
type DatabaseConfig struct {
	// ServerPrefix is the stable prefix of the timestamped server name.
	ServerPrefix string
	AdminUser    string

	// AdminPassword comes from HUBNET_ADMIN_PASSWORD. When empty, the
	// credential is fetched from VaultName/SecretName instead.
	AdminPassword string
	VaultName     string
	SecretName    string
}

// Config is the full, immutable run configuration.
type Config struct {
	SubscriptionID string
	ResourceGroup  string
	Location       string
	Prefix         string

	Hub    NetworkPlan
	Spokes []SpokePlan

	Database DatabaseConfig

	// AllowClientIP enables the transient operator allow-list rule on the
	// database server. Off by default: it weakens the private-only posture.
	AllowClientIP bool
}

// Load builds the run configuration from compiled defaults and environment.
//
// Recognized environment variables:
//
//	AZURE_SUBSCRIPTION_ID      target subscription (required)
//	HUBNET_RESOURCE_GROUP      parent resource group (default: rg-hubnet)
//	HUBNET_LOCATION            Azure region (default: westeurope)
//	HUBNET_PREFIX              resource name prefix (default: hubnet)
//	HUBNET_ADMIN_USER          database admin login (default: hubadmin)
//	HUBNET_ADMIN_PASSWORD      database admin password
//	HUBNET_VAULT_NAME          Key Vault holding the admin password
//	HUBNET_ADMIN_SECRET_NAME   secret name inside the vault
//	HUBNET_ALLOW_CLIENT_IP     "true" enables the operator allow-list step
func Load() (*Config, error) {
	subscription := os.Getenv("AZURE_SUBSCRIPTION_ID")
	if subscription == "" {
		return nil, fmt.Errorf("AZURE_SUBSCRIPTION_ID is not set")
	}

	prefix := envOrDefault("HUBNET_PREFIX", "hubnet")

	cfg := &Config{
		SubscriptionID: subscription,
		ResourceGroup:  envOrDefault("HUBNET_RESOURCE_GROUP", "rg-hubnet"),
		Location:       envOrDefault("HUBNET_LOCATION", "westeurope"),
		Prefix:         prefix,
		Hub:            defaultHub(prefix),
		Spokes:         defaultSpokes(prefix),
		Database: DatabaseConfig{
			ServerPrefix:  prefix + "-pg-",
			AdminUser:     envOrDefault("HUBNET_ADMIN_USER", "hubadmin"),
			AdminPassword: os.Getenv("HUBNET_ADMIN_PASSWORD"),
			VaultName:     os.Getenv("HUBNET_VAULT_NAME"),
			SecretName:    os.Getenv("HUBNET_ADMIN_SECRET_NAME"),
		},
		AllowClientIP: os.Getenv("HUBNET_ALLOW_CLIENT_IP") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseSubnet returns the hub subnet reserved for the private endpoint.
func (c *Config) DatabaseSubnet() SubnetPlan {
	for _, sn := range c.Hub.Subnets {
		if sn.Role == RoleDatabase {
			return sn
		}
	}
	return SubnetPlan{}
}

// Networks returns every network in the topology, hub first.
func (c *Config) Networks() []NetworkPlan {
	nets := []NetworkPlan{c.Hub}
	for _, s := range c.Spokes {
		nets = append(nets, s.Network)
	}
	return nets
}

func defaultHub(prefix string) NetworkPlan {
	return NetworkPlan{
		Name: naming.HubVNet(prefix),
		CIDR: "10.0.0.0/16",
		Subnets: []SubnetPlan{
			{Name: FirewallSubnetName, Prefix: "10.0.1.0/24", Role: RoleFirewall},
			{Name: GatewaySubnetName, Prefix: "10.0.2.0/24", Role: RoleGateway},
			{Name: BastionSubnetName, Prefix: "10.0.3.0/24", Role: RoleBastion},
			{Name: "snet-database", Prefix: "10.0.4.0/24", Role: RoleDatabase},
		},
	}
}

func defaultSpokes(prefix string) []SpokePlan {
	return []SpokePlan{
		{
			Key: "prod",
			Network: NetworkPlan{
				Name: naming.SpokeVNet(prefix, "prod"),
				CIDR: "10.1.0.0/16",
				Subnets: []SubnetPlan{
					{Name: "snet-workload", Prefix: "10.1.1.0/24", Role: RoleWorkload},
				},
			},
		},
		{
			Key: "nonprod",
			Network: NetworkPlan{
				Name: naming.SpokeVNet(prefix, "nonprod"),
				CIDR: "10.2.0.0/16",
				Subnets: []SubnetPlan{
					{Name: "snet-workload", Prefix: "10.2.1.0/24", Role: RoleWorkload},
				},
			},
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
