// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/orchestration"
	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
)

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*provisioning.State, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig builds the run configuration from the environment.
	loadConfig = config.Load

	// newManager creates the Azure control-plane client. The default
	// credential chain covers az login, managed identity and service
	// principal environments.
	newManager = func(cfg *config.Config) (azure.Manager, error) {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build Azure credential: %w", err)
		}
		return azure.NewRealClient(cfg.SubscriptionID, cfg.ResourceGroup, cfg.Location, cred)
	}

	// newReconciler creates the topology reconciler.
	newReconciler = func(mgr azure.Manager, cfg *config.Config) Reconciler {
		return orchestration.NewReconciler(mgr, cfg)
	}
)

// Apply reconciles the full hub-and-spoke topology.
//
// The workflow:
//  1. Loads and validates the run configuration from the environment
//  2. Builds the Azure client from the default credential chain
//  3. Reconciles preflight, infrastructure, database and access phases
//  4. Prints the connection details for the provisioned database
func Apply(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Printf("Applying topology %s in %s (resource group %s)",
		cfg.Prefix, cfg.Location, cfg.ResourceGroup)

	mgr, err := newManager(cfg)
	if err != nil {
		return err
	}

	state, err := newReconciler(mgr, cfg).Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	printApplySuccess(cfg, state)
	return nil
}

// printApplySuccess outputs the completion message with connection details.
func printApplySuccess(cfg *config.Config, state *provisioning.State) {
	fmt.Printf("\nReconciliation complete!\n")
	fmt.Printf("Firewall private IP: %s\n", state.FirewallPrivateIP)

	if state.Server != nil {
		fmt.Printf("\nDatabase server: %s\n", state.Server.Name)
		fmt.Printf("  host:       %s\n", state.Server.FQDN)
		fmt.Printf("  admin user: %s\n", cfg.Database.AdminUser)
		fmt.Printf("  private IP: %s\n", state.EndpointIP)
		fmt.Printf("\nThe server accepts connections only through the private endpoint.\n")
		fmt.Printf("Connect from inside the topology (bastion or a peered network):\n")
		fmt.Printf("  psql \"host=%s user=%s sslmode=require\"\n", state.Server.FQDN, cfg.Database.AdminUser)
	}
}
