// Package main is the entry point for the hubnet CLI.
//
// hubnet provisions a hub-and-spoke network topology on Azure: a hub network
// carrying the firewall, VPN gateway and bastion host, spoke networks peered
// through the hub, forced-tunnel routing through the firewall, and a
// PostgreSQL flexible server reachable only over private link.
//
// For detailed usage information, run:
//
//	hubnet --help
package main

import (
	"fmt"
	"os"

	"github.com/netfabric/hubnet/cmd/hubnet/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
