package azure

import "context"

// PeeringConfig carries the directional peering attributes. A logical
// hub<->spoke relationship is two records, one per direction, and only the
// hub-side record may enable gateway transit.
type PeeringConfig struct {
	AllowVirtualNetworkAccess bool
	AllowForwardedTraffic     bool
	AllowGatewayTransit       bool
	UseRemoteGateways         bool
}

// ServerInfo identifies a provisioned database server.
type ServerInfo struct {
	Name string
	ID   string
	FQDN string
}

// Manager is the control-plane capability surface the reconciler consumes.
// Attribute getters return the zero value without error when the resource or
// attribute does not exist yet; a non-nil error always means a transport or
// authorization failure, never "absent".
type Manager interface {
	// Existence probes (no side effects).
	ResourceGroupExists(ctx context.Context) (bool, error)
	VirtualNetworkExists(ctx context.Context, name string) (bool, error)

	// Networks.
	EnsureVirtualNetwork(ctx context.Context, name, cidr string) (string, error)
	EnsureSubnet(ctx context.Context, vnetName, name, prefix string) (string, error)
	AssociateRouteTable(ctx context.Context, vnetName, subnetName, routeTableID string) error

	// Public addresses and the services that attach them.
	EnsurePublicIP(ctx context.Context, name string) (string, error)
	EnsureFirewall(ctx context.Context, name, subnetID, publicIPID string) error
	FirewallPrivateIP(ctx context.Context, name string) (string, error)
	EnsureVPNGateway(ctx context.Context, name, subnetID, publicIPID string) error
	EnsureBastion(ctx context.Context, name, subnetID, publicIPID string) error

	// Peering and routing.
	EnsurePeering(ctx context.Context, vnetName, peeringName, remoteVNetID string, cfg PeeringConfig) error
	EnsureRouteTable(ctx context.Context, name string) (string, error)
	EnsureDefaultRoute(ctx context.Context, routeTableName, routeName, nextHopIP string) error

	// Database and private link chain.
	FindServerByPrefix(ctx context.Context, prefix string) (*ServerInfo, error)
	CreateServer(ctx context.Context, name, adminUser, adminPassword string) (*ServerInfo, error)
	ServerID(ctx context.Context, name string) (string, error)
	EnsurePrivateEndpoint(ctx context.Context, name, subnetID, targetID string) error
	PrivateEndpointIP(ctx context.Context, name string) (string, error)
	EnsurePrivateZone(ctx context.Context, zoneName string) (string, error)
	EnsureZoneLink(ctx context.Context, zoneName, linkName, vnetID string) error
	RecreateZoneGroup(ctx context.Context, endpointName, groupName, zoneID string) error
	ZoneRecordCount(ctx context.Context, zoneName string) (int, error)
	EnsureServerAllowRule(ctx context.Context, serverName, ruleName, ip string) error

	// External collaborators.
	GetSecret(ctx context.Context, vaultName, secretName string) (string, error)
	GetPublicIP(ctx context.Context) (string, error)
}
