// Package naming derives resource names from the deployment prefix.
//
// Every resource is identified by a stable name inside the resource group so
// that re-runs find what earlier runs created. The one exception is the
// database server: its host name lives in a globally shared namespace, so it
// carries a unix-timestamp suffix minted on first creation.
package naming

import (
	"fmt"
	"time"
)

func HubVNet(prefix string) string {
	return fmt.Sprintf("%s-vnet-hub", prefix)
}

func SpokeVNet(prefix, spoke string) string {
	return fmt.Sprintf("%s-vnet-spoke-%s", prefix, spoke)
}

func Firewall(prefix string) string {
	return fmt.Sprintf("%s-fw", prefix)
}

func VPNGateway(prefix string) string {
	return fmt.Sprintf("%s-vpngw", prefix)
}

func Bastion(prefix string) string {
	return fmt.Sprintf("%s-bastion", prefix)
}

func PublicIP(prefix, service string) string {
	return fmt.Sprintf("%s-pip-%s", prefix, service)
}

func RouteTable(prefix, spoke string) string {
	return fmt.Sprintf("%s-rt-%s", prefix, spoke)
}

// Peering names are directional: one record per direction.
func Peering(local, remote string) string {
	return fmt.Sprintf("peer-%s-to-%s", local, remote)
}

func PrivateEndpoint(prefix string) string {
	return fmt.Sprintf("%s-pe-postgres", prefix)
}

func ZoneLink(prefix, vnet string) string {
	return fmt.Sprintf("%s-link-%s", prefix, vnet)
}

func ZoneGroup(prefix string) string {
	return fmt.Sprintf("%s-zonegroup", prefix)
}

// ServerName mints a globally unique database server name. The timestamp
// keeps retries from colliding with a half-deleted predecessor.
func ServerName(serverPrefix string) string {
	return fmt.Sprintf("%s%d", serverPrefix, time.Now().Unix())
}
