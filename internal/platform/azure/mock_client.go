package azure

import "context"

// MockClient is a hand-written mock implementation of Manager. Each method
// delegates to the corresponding Func field when set and otherwise returns a
// benign default, so tests only wire the calls they care about.
type MockClient struct {
	ResourceGroupExistsFunc  func(ctx context.Context) (bool, error)
	VirtualNetworkExistsFunc func(ctx context.Context, name string) (bool, error)

	EnsureVirtualNetworkFunc func(ctx context.Context, name, cidr string) (string, error)
	EnsureSubnetFunc         func(ctx context.Context, vnetName, name, prefix string) (string, error)
	AssociateRouteTableFunc  func(ctx context.Context, vnetName, subnetName, routeTableID string) error

	EnsurePublicIPFunc    func(ctx context.Context, name string) (string, error)
	EnsureFirewallFunc    func(ctx context.Context, name, subnetID, publicIPID string) error
	FirewallPrivateIPFunc func(ctx context.Context, name string) (string, error)
	EnsureVPNGatewayFunc  func(ctx context.Context, name, subnetID, publicIPID string) error
	EnsureBastionFunc     func(ctx context.Context, name, subnetID, publicIPID string) error

	EnsurePeeringFunc      func(ctx context.Context, vnetName, peeringName, remoteVNetID string, cfg PeeringConfig) error
	EnsureRouteTableFunc   func(ctx context.Context, name string) (string, error)
	EnsureDefaultRouteFunc func(ctx context.Context, routeTableName, routeName, nextHopIP string) error

	FindServerByPrefixFunc    func(ctx context.Context, prefix string) (*ServerInfo, error)
	CreateServerFunc          func(ctx context.Context, name, adminUser, adminPassword string) (*ServerInfo, error)
	ServerIDFunc              func(ctx context.Context, name string) (string, error)
	EnsurePrivateEndpointFunc func(ctx context.Context, name, subnetID, targetID string) error
	PrivateEndpointIPFunc     func(ctx context.Context, name string) (string, error)
	EnsurePrivateZoneFunc     func(ctx context.Context, zoneName string) (string, error)
	EnsureZoneLinkFunc        func(ctx context.Context, zoneName, linkName, vnetID string) error
	RecreateZoneGroupFunc     func(ctx context.Context, endpointName, groupName, zoneID string) error
	ZoneRecordCountFunc       func(ctx context.Context, zoneName string) (int, error)
	EnsureServerAllowRuleFunc func(ctx context.Context, serverName, ruleName, ip string) error

	GetSecretFunc   func(ctx context.Context, vaultName, secretName string) (string, error)
	GetPublicIPFunc func(ctx context.Context) (string, error)

	// Calls records every invocation in order as "Method(arg1,arg2)" for
	// ordering assertions.
	Calls []string
}

// Ensure interface compliance.
var _ Manager = (*MockClient)(nil)

func (m *MockClient) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockClient) ResourceGroupExists(ctx context.Context) (bool, error) {
	m.record("ResourceGroupExists()")
	if m.ResourceGroupExistsFunc != nil {
		return m.ResourceGroupExistsFunc(ctx)
	}
	return true, nil
}

func (m *MockClient) VirtualNetworkExists(ctx context.Context, name string) (bool, error) {
	m.record("VirtualNetworkExists(" + name + ")")
	if m.VirtualNetworkExistsFunc != nil {
		return m.VirtualNetworkExistsFunc(ctx, name)
	}
	return true, nil
}

func (m *MockClient) EnsureVirtualNetwork(ctx context.Context, name, cidr string) (string, error) {
	m.record("EnsureVirtualNetwork(" + name + ")")
	if m.EnsureVirtualNetworkFunc != nil {
		return m.EnsureVirtualNetworkFunc(ctx, name, cidr)
	}
	return "/mock/virtualNetworks/" + name, nil
}

func (m *MockClient) EnsureSubnet(ctx context.Context, vnetName, name, prefix string) (string, error) {
	m.record("EnsureSubnet(" + vnetName + "/" + name + ")")
	if m.EnsureSubnetFunc != nil {
		return m.EnsureSubnetFunc(ctx, vnetName, name, prefix)
	}
	return "/mock/virtualNetworks/" + vnetName + "/subnets/" + name, nil
}

func (m *MockClient) AssociateRouteTable(ctx context.Context, vnetName, subnetName, routeTableID string) error {
	m.record("AssociateRouteTable(" + vnetName + "/" + subnetName + ")")
	if m.AssociateRouteTableFunc != nil {
		return m.AssociateRouteTableFunc(ctx, vnetName, subnetName, routeTableID)
	}
	return nil
}

func (m *MockClient) EnsurePublicIP(ctx context.Context, name string) (string, error) {
	m.record("EnsurePublicIP(" + name + ")")
	if m.EnsurePublicIPFunc != nil {
		return m.EnsurePublicIPFunc(ctx, name)
	}
	return "/mock/publicIPAddresses/" + name, nil
}

func (m *MockClient) EnsureFirewall(ctx context.Context, name, subnetID, publicIPID string) error {
	m.record("EnsureFirewall(" + name + ")")
	if m.EnsureFirewallFunc != nil {
		return m.EnsureFirewallFunc(ctx, name, subnetID, publicIPID)
	}
	return nil
}

func (m *MockClient) FirewallPrivateIP(ctx context.Context, name string) (string, error) {
	m.record("FirewallPrivateIP(" + name + ")")
	if m.FirewallPrivateIPFunc != nil {
		return m.FirewallPrivateIPFunc(ctx, name)
	}
	return "10.0.1.4", nil
}

func (m *MockClient) EnsureVPNGateway(ctx context.Context, name, subnetID, publicIPID string) error {
	m.record("EnsureVPNGateway(" + name + ")")
	if m.EnsureVPNGatewayFunc != nil {
		return m.EnsureVPNGatewayFunc(ctx, name, subnetID, publicIPID)
	}
	return nil
}

func (m *MockClient) EnsureBastion(ctx context.Context, name, subnetID, publicIPID string) error {
	m.record("EnsureBastion(" + name + ")")
	if m.EnsureBastionFunc != nil {
		return m.EnsureBastionFunc(ctx, name, subnetID, publicIPID)
	}
	return nil
}

func (m *MockClient) EnsurePeering(ctx context.Context, vnetName, peeringName, remoteVNetID string, cfg PeeringConfig) error {
	m.record("EnsurePeering(" + vnetName + "/" + peeringName + ")")
	if m.EnsurePeeringFunc != nil {
		return m.EnsurePeeringFunc(ctx, vnetName, peeringName, remoteVNetID, cfg)
	}
	return nil
}

func (m *MockClient) EnsureRouteTable(ctx context.Context, name string) (string, error) {
	m.record("EnsureRouteTable(" + name + ")")
	if m.EnsureRouteTableFunc != nil {
		return m.EnsureRouteTableFunc(ctx, name)
	}
	return "/mock/routeTables/" + name, nil
}

func (m *MockClient) EnsureDefaultRoute(ctx context.Context, routeTableName, routeName, nextHopIP string) error {
	m.record("EnsureDefaultRoute(" + routeTableName + "/" + routeName + ")")
	if m.EnsureDefaultRouteFunc != nil {
		return m.EnsureDefaultRouteFunc(ctx, routeTableName, routeName, nextHopIP)
	}
	return nil
}

func (m *MockClient) FindServerByPrefix(ctx context.Context, prefix string) (*ServerInfo, error) {
	m.record("FindServerByPrefix(" + prefix + ")")
	if m.FindServerByPrefixFunc != nil {
		return m.FindServerByPrefixFunc(ctx, prefix)
	}
	return nil, nil
}

func (m *MockClient) CreateServer(ctx context.Context, name, adminUser, adminPassword string) (*ServerInfo, error) {
	m.record("CreateServer(" + name + ")")
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, name, adminUser, adminPassword)
	}
	return &ServerInfo{Name: name, ID: "/mock/flexibleServers/" + name, FQDN: name + ".postgres.database.azure.com"}, nil
}

func (m *MockClient) ServerID(ctx context.Context, name string) (string, error) {
	m.record("ServerID(" + name + ")")
	if m.ServerIDFunc != nil {
		return m.ServerIDFunc(ctx, name)
	}
	return "/mock/flexibleServers/" + name, nil
}

func (m *MockClient) EnsurePrivateEndpoint(ctx context.Context, name, subnetID, targetID string) error {
	m.record("EnsurePrivateEndpoint(" + name + ")")
	if m.EnsurePrivateEndpointFunc != nil {
		return m.EnsurePrivateEndpointFunc(ctx, name, subnetID, targetID)
	}
	return nil
}

func (m *MockClient) PrivateEndpointIP(ctx context.Context, name string) (string, error) {
	m.record("PrivateEndpointIP(" + name + ")")
	if m.PrivateEndpointIPFunc != nil {
		return m.PrivateEndpointIPFunc(ctx, name)
	}
	return "10.0.4.5", nil
}

func (m *MockClient) EnsurePrivateZone(ctx context.Context, zoneName string) (string, error) {
	m.record("EnsurePrivateZone(" + zoneName + ")")
	if m.EnsurePrivateZoneFunc != nil {
		return m.EnsurePrivateZoneFunc(ctx, zoneName)
	}
	return "/mock/privateDnsZones/" + zoneName, nil
}

func (m *MockClient) EnsureZoneLink(ctx context.Context, zoneName, linkName, vnetID string) error {
	m.record("EnsureZoneLink(" + zoneName + "/" + linkName + ")")
	if m.EnsureZoneLinkFunc != nil {
		return m.EnsureZoneLinkFunc(ctx, zoneName, linkName, vnetID)
	}
	return nil
}

func (m *MockClient) RecreateZoneGroup(ctx context.Context, endpointName, groupName, zoneID string) error {
	m.record("RecreateZoneGroup(" + endpointName + "/" + groupName + ")")
	if m.RecreateZoneGroupFunc != nil {
		return m.RecreateZoneGroupFunc(ctx, endpointName, groupName, zoneID)
	}
	return nil
}

func (m *MockClient) ZoneRecordCount(ctx context.Context, zoneName string) (int, error) {
	m.record("ZoneRecordCount(" + zoneName + ")")
	if m.ZoneRecordCountFunc != nil {
		return m.ZoneRecordCountFunc(ctx, zoneName)
	}
	return 1, nil
}

func (m *MockClient) EnsureServerAllowRule(ctx context.Context, serverName, ruleName, ip string) error {
	m.record("EnsureServerAllowRule(" + serverName + "/" + ruleName + ")")
	if m.EnsureServerAllowRuleFunc != nil {
		return m.EnsureServerAllowRuleFunc(ctx, serverName, ruleName, ip)
	}
	return nil
}

func (m *MockClient) GetSecret(ctx context.Context, vaultName, secretName string) (string, error) {
	m.record("GetSecret(" + vaultName + "/" + secretName + ")")
	if m.GetSecretFunc != nil {
		return m.GetSecretFunc(ctx, vaultName, secretName)
	}
	return "mock-secret", nil
}

func (m *MockClient) GetPublicIP(ctx context.Context) (string, error) {
	m.record("GetPublicIP()")
	if m.GetPublicIPFunc != nil {
		return m.GetPublicIPFunc(ctx)
	}
	return "203.0.113.10", nil
}
