// Package orchestration assembles the provisioning phases into a single
// reconciliation run.
package orchestration

import (
	"context"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
	"github.com/netfabric/hubnet/internal/provisioning/access"
	"github.com/netfabric/hubnet/internal/provisioning/database"
	"github.com/netfabric/hubnet/internal/provisioning/infrastructure"
	"github.com/netfabric/hubnet/internal/provisioning/preflight"
)

// Reconciler drives the full topology to its desired state. Re-running it
// against a complete deployment performs no creates.
type Reconciler struct {
	manager azure.Manager
	config  *config.Config
}

// NewReconciler creates a reconciler for the given control-plane client and
// run configuration.
func NewReconciler(manager azure.Manager, cfg *config.Config) *Reconciler {
	return &Reconciler{manager: manager, config: cfg}
}

// Reconcile runs all phases in dependency order and returns the final
// provisioning state, which carries the connection details for the
// completion message.
func (r *Reconciler) Reconcile(ctx context.Context) (*provisioning.State, error) {
	pctx := provisioning.NewContext(ctx, r.config, r.manager)

	phases := []provisioning.Phase{
		preflight.NewProvisioner(),
		infrastructure.NewProvisioner(),
		database.NewProvisioner(),
		access.NewProvisioner(),
	}

	if err := provisioning.RunPhases(pctx, phases); err != nil {
		return nil, err
	}
	return pctx.State, nil
}
