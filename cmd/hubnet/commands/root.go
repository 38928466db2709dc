// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and validation. Command execution is delegated to handler functions
// in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the hubnet CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubnet",
		Short: "Provision a hub-and-spoke network topology on Azure",
	}

	cmd.AddCommand(Apply())
	cmd.AddCommand(Check())
	cmd.AddCommand(Version())

	return cmd
}
