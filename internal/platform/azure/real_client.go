package azure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresqlflexibleservers/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/privatedns/armprivatedns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/netfabric/hubnet/internal/config"
)

// RealClient implements Manager against the Azure Resource Manager API.
type RealClient struct {
	resourceGroup string
	location      string
	credential    azcore.TokenCredential
	timeouts      *config.Timeouts
	httpClient    *http.Client

	vnets       *armnetwork.VirtualNetworksClient
	subnets     *armnetwork.SubnetsClient
	peerings    *armnetwork.VirtualNetworkPeeringsClient
	publicIPs   *armnetwork.PublicIPAddressesClient
	firewalls   *armnetwork.AzureFirewallsClient
	gateways    *armnetwork.VirtualNetworkGatewaysClient
	bastions    *armnetwork.BastionHostsClient
	routeTables *armnetwork.RouteTablesClient
	routes      *armnetwork.RoutesClient
	endpoints   *armnetwork.PrivateEndpointsClient
	zoneGroups  *armnetwork.PrivateDNSZoneGroupsClient

	zones     *armprivatedns.PrivateZonesClient
	zoneLinks *armprivatedns.VirtualNetworkLinksClient
	records   *armprivatedns.RecordSetsClient

	groups *armresources.ResourceGroupsClient

	servers     *armpostgresqlflexibleservers.ServersClient
	serverRules *armpostgresqlflexibleservers.FirewallRulesClient
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) { c.timeouts = t }
}

// WithHTTPClient sets a custom HTTP client for public-address discovery.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) { c.httpClient = hc }
}

// NewRealClient builds a Manager bound to one subscription, resource group
// and region.
func NewRealClient(subscriptionID, resourceGroup, location string, credential azcore.TokenCredential, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		resourceGroup: resourceGroup,
		location:      location,
		credential:    credential,
		timeouts:      config.LoadTimeouts(),
		httpClient:    http.DefaultClient,
	}

	var err error
	if c.vnets, err = armnetwork.NewVirtualNetworksClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create virtual networks client: %w", err)
	}
	if c.subnets, err = armnetwork.NewSubnetsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create subnets client: %w", err)
	}
	if c.peerings, err = armnetwork.NewVirtualNetworkPeeringsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create peerings client: %w", err)
	}
	if c.publicIPs, err = armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}
	if c.firewalls, err = armnetwork.NewAzureFirewallsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create firewalls client: %w", err)
	}
	if c.gateways, err = armnetwork.NewVirtualNetworkGatewaysClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create gateways client: %w", err)
	}
	if c.bastions, err = armnetwork.NewBastionHostsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create bastion client: %w", err)
	}
	if c.routeTables, err = armnetwork.NewRouteTablesClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create route tables client: %w", err)
	}
	if c.routes, err = armnetwork.NewRoutesClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create routes client: %w", err)
	}
	if c.endpoints, err = armnetwork.NewPrivateEndpointsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create private endpoints client: %w", err)
	}
	if c.zoneGroups, err = armnetwork.NewPrivateDNSZoneGroupsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create zone groups client: %w", err)
	}
	if c.zones, err = armprivatedns.NewPrivateZonesClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create private zones client: %w", err)
	}
	if c.zoneLinks, err = armprivatedns.NewVirtualNetworkLinksClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create zone links client: %w", err)
	}
	if c.records, err = armprivatedns.NewRecordSetsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create record sets client: %w", err)
	}
	if c.groups, err = armresources.NewResourceGroupsClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	if c.servers, err = armpostgresqlflexibleservers.NewServersClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create servers client: %w", err)
	}
	if c.serverRules, err = armpostgresqlflexibleservers.NewFirewallRulesClient(subscriptionID, credential, nil); err != nil {
		return nil, fmt.Errorf("failed to create server firewall rules client: %w", err)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ResourceGroupExists probes the parent resource group.
func (c *RealClient) ResourceGroupExists(ctx context.Context) (bool, error) {
	resp, err := c.groups.CheckExistence(ctx, c.resourceGroup, nil)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check resource group %s: %w", c.resourceGroup, err)
	}
	return resp.Success, nil
}

// GetSecret retrieves a secret from the named Key Vault.
func (c *RealClient) GetSecret(ctx context.Context, vaultName, secretName string) (string, error) {
	vaultURL := fmt.Sprintf("https://%s.vault.azure.net", vaultName)
	client, err := azsecrets.NewClient(vaultURL, c.credential, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create key vault client for %s: %w", vaultName, err)
	}
	resp, err := client.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s from vault %s: %w", secretName, vaultName, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %s in vault %s has no value", secretName, vaultName)
	}
	return *resp.Value, nil
}

// GetPublicIP returns the public IPv4 address of the host running the tool.
func (c *RealClient) GetPublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://ipv4.icanhazip.com", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
