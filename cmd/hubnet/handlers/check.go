package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/provisioning/preflight"
)

// Check runs the preflight phase on its own: configuration, credential,
// resource group and admin password resolution. Nothing is created.
func Check(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mgr, err := newManager(cfg)
	if err != nil {
		return err
	}

	log.Printf("Checking preconditions for %s (resource group %s)", cfg.Prefix, cfg.ResourceGroup)

	pctx := provisioning.NewContext(ctx, cfg, mgr)
	if err := preflight.NewProvisioner().Provision(pctx); err != nil {
		return fmt.Errorf("precondition check failed: %w", err)
	}

	hubExists, err := mgr.VirtualNetworkExists(ctx, cfg.Hub.Name)
	if err != nil {
		return fmt.Errorf("failed to probe hub network %s: %w", cfg.Hub.Name, err)
	}

	fmt.Printf("All preconditions satisfied. 'hubnet apply' is ready to run.\n")
	if hubExists {
		fmt.Printf("Hub network %s already exists; apply will reconcile the existing topology.\n", cfg.Hub.Name)
	} else {
		fmt.Printf("Hub network %s does not exist yet; apply will provision from scratch.\n", cfg.Hub.Name)
	}
	return nil
}
