// Package provisioning provides the shared types for the reconciliation
// phases: the per-run Context and State, the Phase interface, the sequential
// pipeline runner, and the error taxonomy.
//
// The phases live in focused subpackages:
//   - preflight/ — precondition checks and credential resolution
//   - infrastructure/ — networks, firewall, peering, routing
//   - database/ — flexible server, private endpoint, private DNS chain
//   - access/ — optional transient operator allow-list
package provisioning
