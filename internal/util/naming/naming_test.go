package naming

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedNames(t *testing.T) {
	assert.Equal(t, "hubnet-vnet-hub", HubVNet("hubnet"))
	assert.Equal(t, "hubnet-vnet-spoke-prod", SpokeVNet("hubnet", "prod"))
	assert.Equal(t, "hubnet-fw", Firewall("hubnet"))
	assert.Equal(t, "hubnet-vpngw", VPNGateway("hubnet"))
	assert.Equal(t, "hubnet-bastion", Bastion("hubnet"))
	assert.Equal(t, "hubnet-pip-firewall", PublicIP("hubnet", "firewall"))
	assert.Equal(t, "hubnet-rt-prod", RouteTable("hubnet", "prod"))
	assert.Equal(t, "hubnet-pe-postgres", PrivateEndpoint("hubnet"))
	assert.Equal(t, "hubnet-zonegroup", ZoneGroup("hubnet"))
}

func TestPeering_Directional(t *testing.T) {
	forward := Peering("hub", "spoke")
	backward := Peering("spoke", "hub")
	assert.Equal(t, "peer-hub-to-spoke", forward)
	assert.Equal(t, "peer-spoke-to-hub", backward)
	assert.NotEqual(t, forward, backward)
}

func TestServerName_TimestampSuffix(t *testing.T) {
	name := ServerName("hubnet-pg-")
	require.True(t, strings.HasPrefix(name, "hubnet-pg-"))

	suffix := strings.TrimPrefix(name, "hubnet-pg-")
	_, err := strconv.ParseInt(suffix, 10, 64)
	assert.NoError(t, err, "suffix must be a unix timestamp")
}
