// Package preflight verifies everything the run depends on but never
// creates, before any mutating step executes. A failed check aborts the run
// with nothing created.
package preflight

import (
	"fmt"

	"github.com/netfabric/hubnet/internal/provisioning"
)

const phase = "preflight"

// Provisioner runs the precondition checks and resolves the administrative
// credential. The parent resource group is always required; callers that
// depend on networks they do not create add them via WithRequiredNetworks.
type Provisioner struct {
	requiredNetworks []string
}

// Option configures a preflight provisioner.
type Option func(*Provisioner)

// WithRequiredNetworks adds virtual networks to the required-resource list.
// The full reconciliation pipeline creates its networks itself and does not
// set this; a run scoped to steps downstream of network creation must.
func WithRequiredNetworks(names ...string) Option {
	return func(p *Provisioner) {
		p.requiredNetworks = append(p.requiredNetworks, names...)
	}
}

// NewProvisioner creates a new preflight provisioner.
func NewProvisioner(opts ...Option) *Provisioner {
	p := &Provisioner{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.checkResourceGroup(ctx); err != nil {
		return err
	}
	if err := p.checkRequiredNetworks(ctx); err != nil {
		return err
	}
	return p.resolveAdminPassword(ctx)
}

// checkResourceGroup probes the parent resource group. The group is owned by
// the platform team, not this tool, so its absence is a precondition
// failure, not something to create.
func (p *Provisioner) checkResourceGroup(ctx *provisioning.Context) error {
	rg := ctx.Config.ResourceGroup
	ctx.Observer.Printf("[%s] Checking resource group %s...", phase, rg)

	exists, err := ctx.Azure.ResourceGroupExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to probe resource group %s: %w", rg, err)
	}
	if !exists {
		return &provisioning.PreconditionError{
			Resource: fmt.Sprintf("resource group %s", rg),
			Reason:   "does not exist; create it (or set HUBNET_RESOURCE_GROUP) before running hubnet",
		}
	}
	return nil
}

// checkRequiredNetworks probes every network this run depends on but does
// not create. The first missing one aborts the run before any mutation.
func (p *Provisioner) checkRequiredNetworks(ctx *provisioning.Context) error {
	for _, name := range p.requiredNetworks {
		ctx.Observer.Printf("[%s] Checking network %s...", phase, name)

		exists, err := ctx.Azure.VirtualNetworkExists(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to probe network %s: %w", name, err)
		}
		if !exists {
			return &provisioning.PreconditionError{
				Resource: fmt.Sprintf("network %s", name),
				Reason:   fmt.Sprintf("does not exist in resource group %s; provision it before running this step", ctx.Config.ResourceGroup),
			}
		}
	}
	return nil
}

// resolveAdminPassword resolves the database administrative credential:
// HUBNET_ADMIN_PASSWORD wins, then the configured Key Vault secret. The run
// fails fast here rather than failing at server creation with the
// credential half-applied.
func (p *Provisioner) resolveAdminPassword(ctx *provisioning.Context) error {
	db := ctx.Config.Database

	if db.AdminPassword != "" {
		ctx.State.AdminPassword = db.AdminPassword
		return nil
	}

	if db.VaultName != "" && db.SecretName != "" {
		ctx.Observer.Printf("[%s] Fetching admin password from vault %s...", phase, db.VaultName)
		secret, err := ctx.Azure.GetSecret(ctx, db.VaultName, db.SecretName)
		if err != nil {
			return fmt.Errorf("failed to fetch admin password from vault %s: %w", db.VaultName, err)
		}
		if secret == "" {
			return &provisioning.PreconditionError{
				Resource: fmt.Sprintf("secret %s in vault %s", db.SecretName, db.VaultName),
				Reason:   "secret exists but is empty",
			}
		}
		ctx.State.AdminPassword = secret
		return nil
	}

	return &provisioning.PreconditionError{
		Resource: "database admin password",
		Reason:   "set HUBNET_ADMIN_PASSWORD, or HUBNET_VAULT_NAME and HUBNET_ADMIN_SECRET_NAME",
	}
}
