package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/postgresql/armpostgresqlflexibleservers/v4"
)

// FindServerByPrefix looks for an existing flexible server whose name starts
// with prefix. Returns nil when none exists. This is how re-runs recover the
// timestamped server name minted by an earlier run.
func (c *RealClient) FindServerByPrefix(ctx context.Context, prefix string) (*ServerInfo, error) {
	pager := c.servers.NewListByResourceGroupPager(c.resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list servers in %s: %w", c.resourceGroup, err)
		}
		for _, srv := range page.Value {
			if srv.Name == nil || !strings.HasPrefix(*srv.Name, prefix) {
				continue
			}
			return serverInfo(srv), nil
		}
	}
	return nil, nil
}

// CreateServer provisions a new PostgreSQL flexible server with public
// network access disabled. The caller supplies the unique name.
func (c *RealClient) CreateServer(ctx context.Context, name, adminUser, adminPassword string) (*ServerInfo, error) {
	poller, err := c.servers.BeginCreate(ctx, c.resourceGroup, name, armpostgresqlflexibleservers.Server{
		Location: to.Ptr(c.location),
		SKU: &armpostgresqlflexibleservers.SKU{
			Name: to.Ptr("Standard_B1ms"),
			Tier: to.Ptr(armpostgresqlflexibleservers.SKUTierBurstable),
		},
		Properties: &armpostgresqlflexibleservers.ServerProperties{
			CreateMode:                 to.Ptr(armpostgresqlflexibleservers.CreateModeCreate),
			Version:                    to.Ptr(armpostgresqlflexibleservers.ServerVersionSixteen),
			AdministratorLogin:         to.Ptr(adminUser),
			AdministratorLoginPassword: to.Ptr(adminPassword),
			Storage: &armpostgresqlflexibleservers.Storage{
				StorageSizeGB: to.Ptr[int32](32),
			},
			Network: &armpostgresqlflexibleservers.Network{
				PublicNetworkAccess: to.Ptr(armpostgresqlflexibleservers.ServerPublicNetworkAccessStateDisabled),
			},
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create server %s: %w", name, err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for server %s creation: %w", name, err)
	}
	return serverInfo(&resp.Server), nil
}

// ServerID resolves the server's ARM ID, or "" when the server is absent.
func (c *RealClient) ServerID(ctx context.Context, name string) (string, error) {
	resp, err := c.servers.Get(ctx, c.resourceGroup, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get server %s: %w", name, err)
	}
	if resp.ID == nil {
		return "", nil
	}
	return *resp.ID, nil
}

// EnsureServerAllowRule writes a single-address firewall rule on the server.
// Create-or-update: a changed operator address overwrites the old rule.
func (c *RealClient) EnsureServerAllowRule(ctx context.Context, serverName, ruleName, ip string) error {
	poller, err := c.serverRules.BeginCreateOrUpdate(ctx, c.resourceGroup, serverName, ruleName, armpostgresqlflexibleservers.FirewallRule{
		Properties: &armpostgresqlflexibleservers.FirewallRuleProperties{
			StartIPAddress: to.Ptr(ip),
			EndIPAddress:   to.Ptr(ip),
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create allow rule %s on server %s: %w", ruleName, serverName, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("failed to wait for allow rule %s on server %s: %w", ruleName, serverName, err)
	}
	return nil
}

func serverInfo(srv *armpostgresqlflexibleservers.Server) *ServerInfo {
	info := &ServerInfo{}
	if srv.Name != nil {
		info.Name = *srv.Name
	}
	if srv.ID != nil {
		info.ID = *srv.ID
	}
	if srv.Properties != nil && srv.Properties.FullyQualifiedDomainName != nil {
		info.FQDN = *srv.Properties.FullyQualifiedDomainName
	}
	return info
}
