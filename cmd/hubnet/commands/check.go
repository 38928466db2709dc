package commands

import (
	"github.com/spf13/cobra"

	"github.com/netfabric/hubnet/cmd/hubnet/handlers"
)

// Check returns the command that verifies preconditions without mutating
// anything.
func Check() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify credentials and preconditions without changing anything",
		Long: `Verify that a subsequent 'hubnet apply' can run: the configuration is
valid, the credential works, the parent resource group exists, and the
database admin password is resolvable. No resource is created or modified.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Check(cmd.Context())
		},
	}
}
