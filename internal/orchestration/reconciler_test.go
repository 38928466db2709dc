package orchestration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfabric/hubnet/internal/config"
	"github.com/netfabric/hubnet/internal/platform/azure"
	"github.com/netfabric/hubnet/internal/provisioning"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")
	t.Setenv("HUBNET_ADMIN_PASSWORD", "s3cret")
	t.Setenv("HUBNET_POLL_INTERVAL", "1ms")
	t.Setenv("HUBNET_POLL_MAX_WAIT", "10ms")

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestReconcile_FullRun(t *testing.T) {
	mock := &azure.MockClient{}
	cfg := testConfig(t)

	state, err := NewReconciler(mock, cfg).Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "10.0.1.4", state.FirewallPrivateIP)
	require.NotNil(t, state.Server)
	assert.True(t, strings.HasPrefix(state.Server.Name, "hubnet-pg-"))
	assert.Equal(t, "10.0.4.5", state.EndpointIP)
	assert.Len(t, state.VNetIDs, 3)
}

func TestReconcile_RerunAgainstCompleteDeployment(t *testing.T) {
	existing := &azure.ServerInfo{
		Name: "hubnet-pg-1700000000",
		ID:   "/mock/flexibleServers/hubnet-pg-1700000000",
		FQDN: "hubnet-pg-1700000000.postgres.database.azure.com",
	}
	mock := &azure.MockClient{
		FindServerByPrefixFunc: func(_ context.Context, _ string) (*azure.ServerInfo, error) {
			return existing, nil
		},
	}
	cfg := testConfig(t)

	state, err := NewReconciler(mock, cfg).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, existing, state.Server)

	recreates := 0
	for _, call := range mock.Calls {
		assert.False(t, strings.HasPrefix(call, "CreateServer("),
			"a re-run adopts the existing server instead of creating a sibling")
		if strings.HasPrefix(call, "RecreateZoneGroup(") {
			recreates++
		}
	}
	assert.Equal(t, 1, recreates, "the zone group is the only resource rebuilt on every run")
}

func TestReconcile_AccessStaysOffByDefault(t *testing.T) {
	mock := &azure.MockClient{}
	cfg := testConfig(t)

	_, err := NewReconciler(mock, cfg).Reconcile(context.Background())
	require.NoError(t, err)

	for _, call := range mock.Calls {
		assert.False(t, strings.HasPrefix(call, "EnsureServerAllowRule("))
		assert.NotEqual(t, "GetPublicIP()", call)
	}
}

func TestReconcile_PreflightFailureHaltsEverything(t *testing.T) {
	mock := &azure.MockClient{
		ResourceGroupExistsFunc: func(_ context.Context) (bool, error) { return false, nil },
	}
	cfg := testConfig(t)

	_, err := NewReconciler(mock, cfg).Reconcile(context.Background())
	require.Error(t, err)

	var pre *provisioning.PreconditionError
	assert.ErrorAs(t, err, &pre)
	assert.Equal(t, []string{"ResourceGroupExists()"}, mock.Calls, "nothing runs past a failed precondition")
}

func TestReconcile_PhaseErrorStopsPipeline(t *testing.T) {
	sentinel := errors.New("quota exceeded")
	mock := &azure.MockClient{
		EnsureFirewallFunc: func(_ context.Context, _, _, _ string) error { return sentinel },
	}
	cfg := testConfig(t)

	_, err := NewReconciler(mock, cfg).Reconcile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)

	for _, call := range mock.Calls {
		assert.False(t, strings.HasPrefix(call, "FindServerByPrefix("),
			"the database phase must not start after an infrastructure failure")
	}
}
