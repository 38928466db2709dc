package access

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

func testContext(t *testing.T, mock *azure.MockClient, allow bool) *provisioning.Context {
	t.Helper()
	t.Setenv("AZURE_SUBSCRIPTION_ID", "sub-123")

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.AllowClientIP = allow

	ctx := provisioning.NewContext(context.Background(), cfg, mock)
	ctx.State.Server = &azure.ServerInfo{Name: "hubnet-pg-1700000000"}
	return ctx
}

func TestProvisioner_Name(t *testing.T) {
	assert.Equal(t, "access", NewProvisioner().Name())
}

func TestAccess_DisabledByDefault(t *testing.T) {
	mock := &azure.MockClient{}
	ctx := testContext(t, mock, false)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Empty(t, mock.Calls, "the private-only posture must stay untouched")
}

func TestAccess_AddsRuleForDiscoveredIP(t *testing.T) {
	mock := &azure.MockClient{
		EnsureServerAllowRuleFunc: func(_ context.Context, serverName, ruleName, ip string) error {
			assert.Equal(t, "hubnet-pg-1700000000", serverName)
			assert.Equal(t, "client-ip-temp", ruleName)
			assert.Equal(t, "203.0.113.10", ip)
			return nil
		},
	}
	ctx := testContext(t, mock, true)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Contains(t, mock.Calls, "EnsureServerAllowRule(hubnet-pg-1700000000/client-ip-temp)")
}

func TestAccess_DiscoveryFailureSkipsRule(t *testing.T) {
	mock := &azure.MockClient{
		GetPublicIPFunc: func(_ context.Context) (string, error) {
			return "", errors.New("discovery service unreachable")
		},
	}
	ctx := testContext(t, mock, true)

	require.NoError(t, NewProvisioner().Provision(ctx), "discovery failure downgrades to a warning")
	for _, call := range mock.Calls {
		assert.False(t, strings.HasPrefix(call, "EnsureServerAllowRule("))
	}
}

func TestAccess_RuleFailureIsFatal(t *testing.T) {
	sentinel := errors.New("server rejecting writes")
	mock := &azure.MockClient{
		EnsureServerAllowRuleFunc: func(_ context.Context, _, _, _ string) error { return sentinel },
	}
	ctx := testContext(t, mock, true)

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}
