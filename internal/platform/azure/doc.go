// Package azure wraps the Azure Resource Manager control plane behind the
// Manager interface the provisioning phases consume.
//
// The package carries the reusable reconciliation machinery: existence
// probes that distinguish "absent" from transport failure, a generic
// EnsureOperation with a fixed per-resource upsert policy, and a bounded
// readiness poller for attributes the control plane provisions
// asynchronously. RealClient implements Manager against the ARM SDK;
// MockClient backs the tests.
package azure
