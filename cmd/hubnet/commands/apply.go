package commands

import (
	"github.com/spf13/cobra"

	"github.com/netfabric/hubnet/cmd/hubnet/handlers"
)

// Apply returns the command that reconciles the full topology.
//
// Environment variables:
//
//	AZURE_SUBSCRIPTION_ID    target subscription (required)
//	HUBNET_RESOURCE_GROUP    parent resource group (default: rg-hubnet)
//	HUBNET_ADMIN_PASSWORD    database admin password (or use a Key Vault via
//	                         HUBNET_VAULT_NAME and HUBNET_ADMIN_SECRET_NAME)
func Apply() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Create or update the hub-and-spoke topology",
		Long: `Create or update the hub-and-spoke topology.

This command reconciles every resource toward the desired state: networks and
subnets, public IPs, the hub firewall, VPN gateway and bastion, hub-spoke
peerings, forced-tunnel routing, and the PostgreSQL flexible server behind a
private endpoint.

The command is idempotent. Re-running it against a complete deployment
changes nothing; re-running it after a partial failure finishes the remaining
work.

Examples:
  # Provision the topology
  hubnet apply

  # Re-apply after a partial failure
  hubnet apply`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context())
		},
	}
}
