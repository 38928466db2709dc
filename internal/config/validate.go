package config

import (
	"fmt"
	"net"
)

// Validate checks the address plan: every subnet must fit inside its parent
// network and subnets of one network must not overlap.
func (c *Config) Validate() error {
	if c.Database.AdminUser == "" {
		return fmt.Errorf("database admin user must not be empty")
	}
	for _, network := range c.Networks() {
		if err := validateNetwork(network); err != nil {
			return err
		}
	}
	return nil
}

func validateNetwork(n NetworkPlan) error {
	_, parent, err := net.ParseCIDR(n.CIDR)
	if err != nil {
		return fmt.Errorf("network %s: invalid CIDR %q: %w", n.Name, n.CIDR, err)
	}

	var parsed []*net.IPNet
	for _, sn := range n.Subnets {
		_, sub, err := net.ParseCIDR(sn.Prefix)
		if err != nil {
			return fmt.Errorf("network %s: subnet %s has invalid prefix %q: %w", n.Name, sn.Name, sn.Prefix, err)
		}
		if !cidrWithin(parent, sub) {
			return fmt.Errorf("network %s: subnet %s (%s) is outside the network range %s", n.Name, sn.Name, sn.Prefix, n.CIDR)
		}
		for i, other := range parsed {
			if cidrsOverlap(sub, other) {
				return fmt.Errorf("network %s: subnet %s (%s) overlaps %s (%s)",
					n.Name, sn.Name, sn.Prefix, n.Subnets[i].Name, n.Subnets[i].Prefix)
			}
		}
		parsed = append(parsed, sub)
	}
	return nil
}

// cidrWithin reports whether inner is fully contained in outer.
func cidrWithin(outer, inner *net.IPNet) bool {
	outerOnes, _ := outer.Mask.Size()
	innerOnes, _ := inner.Mask.Size()
	return outer.Contains(inner.IP) && innerOnes >= outerOnes
}

func cidrsOverlap(a, b *net.IPNet) bool {
	return a.Contains(b.IP) || b.Contains(a.IP)
}
