// Package access manages the optional operator allow-list rule on the
// database server. The rule punches a hole in the private-only posture and is
// therefore off unless explicitly requested.
package access

import (
	"fmt"

	"github.com/netfabric/hubnet/internal/provisioning"
)

const (
	phase    = "access"
	ruleName = "client-ip-temp"
)

// Provisioner handles the transient operator access rule.
type Provisioner struct{}

// NewProvisioner creates a new access provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. Discovery of the
// caller's public address goes over a third-party service and may fail for
// reasons unrelated to the deployment, so a failure here downgrades to a
// warning and the rule is skipped.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if !ctx.Config.AllowClientIP {
		ctx.Observer.Printf("[%s] Client allow-list disabled; server stays private-only", phase)
		return nil
	}
	if ctx.State.Server == nil {
		return fmt.Errorf("no database server to attach the allow rule to")
	}

	ip, err := ctx.Azure.GetPublicIP(ctx)
	if err != nil {
		ctx.Observer.Warnf("[%s] Could not discover client public IP, skipping allow rule: %v", phase, err)
		return nil
	}

	server := ctx.State.Server.Name
	if err := ctx.Azure.EnsureServerAllowRule(ctx, server, ruleName, ip); err != nil {
		return fmt.Errorf("failed to ensure allow rule %s on %s: %w", ruleName, server, err)
	}

	ctx.Observer.Warnf("[%s] Allow rule %s admits %s directly to %s; remove it when done:", phase, ruleName, ip, server)
	ctx.Observer.Printf("[%s]   az postgres flexible-server firewall-rule delete --resource-group %s --name %s --rule-name %s --yes",
		phase, ctx.Config.ResourceGroup, server, ruleName)
	return nil
}
