package auth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/store"
	"github.com/fabric-cli/fab/pkg/auth/types"
)

func TestGetAccessToken_EnvironmentTokens(t *testing.T) {
	h := newHarness(t)
	fabricToken := h.signer.sign(fabricAud, nil)
	oneLakeToken := h.signer.sign(oneLakeAud, nil)

	tests := []struct {
		name      string
		env       testEnv
		scope     types.Scope
		wantToken string
		wantErrIs error
	}{
		{
			name:      "fabric scope",
			env:       testEnv{"FAB_TOKEN": fabricToken, "FAB_TOKEN_ONELAKE": oneLakeToken},
			scope:     types.ScopeFabric,
			wantToken: fabricToken,
		},
		{
			name:      "onelake scope",
			env:       testEnv{"FAB_TOKEN": fabricToken, "FAB_TOKEN_ONELAKE": oneLakeToken},
			scope:     types.ScopeOneLake,
			wantToken: oneLakeToken,
		},
		{
			name:      "only fabric token",
			env:       testEnv{"FAB_TOKEN": fabricToken},
			scope:     types.ScopeFabric,
			wantErrIs: errUtils.ErrFabricAndOneLakeTokensRequired,
		},
		{
			name:      "only onelake token",
			env:       testEnv{"FAB_TOKEN_ONELAKE": oneLakeToken},
			scope:     types.ScopeOneLake,
			wantErrIs: errUtils.ErrFabricAndOneLakeTokensRequired,
		},
		{
			name:      "azure token missing",
			env:       testEnv{"FAB_TOKEN": fabricToken, "FAB_TOKEN_ONELAKE": oneLakeToken},
			scope:     types.ScopeAzure,
			wantErrIs: errUtils.ErrAzureTokenRequired,
		},
		{
			name:      "unknown scope",
			env:       testEnv{"FAB_TOKEN": fabricToken, "FAB_TOKEN_ONELAKE": oneLakeToken},
			scope:     types.Scope("https://example.com/.default"),
			wantErrIs: errUtils.ErrInvalidScope,
		},
		{
			name:      "audience mismatch",
			env:       testEnv{"FAB_TOKEN": oneLakeToken, "FAB_TOKEN_ONELAKE": oneLakeToken},
			scope:     types.ScopeFabric,
			wantErrIs: errUtils.ErrJWTDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := h.manager(t, tt.env)

			token, err := m.GetAccessToken(context.Background(), tt.scope, false)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Empty(t, h.factory.calls, "environment tokens never build a credential")
		})
	}
}

func TestGetAccessToken_CredentialErrors(t *testing.T) {
	t.Run("not logged in", func(t *testing.T) {
		h := newHarness(t)
		m := h.manager(t, nil)

		_, err := m.GetAccessToken(context.Background(), types.ScopeFabric, false)
		assert.ErrorIs(t, err, errUtils.ErrNotLoggedIn)
		assert.Equal(t, errUtils.ExitCodeCannotExecute, errUtils.GetExitCode(err))
	})

	t.Run("service principal from a previous process", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.SetMany(map[string]any{
			types.KeyIdentityType: "service_principal",
			types.KeyTenantID:     testTenant,
			types.KeySPNClientID:  testClient,
		}))
		m := h.manager(t, nil)

		_, err := m.GetAccessToken(context.Background(), types.ScopeFabric, true)
		assert.ErrorIs(t, err, errUtils.ErrSPNReauthRequired)
		assert.Empty(t, h.factory.calls)
	})

	t.Run("unknown stored identity type", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Set(types.KeyIdentityType, "robot"))
		m := h.manager(t, nil)

		_, err := m.GetAccessToken(context.Background(), types.ScopeFabric, true)
		assert.ErrorIs(t, err, errUtils.ErrNotLoggedIn)
	})
}

func TestGetAccessToken_ManagedIdentity(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantErrIs error
	}{
		{name: "success"},
		{
			name:      "endpoint unreachable",
			err:       &url.Error{Op: "Get", URL: "http://169.254.169.254", Err: errors.New("dial tcp: refused")},
			wantErrIs: errUtils.ErrManagedIdentityConnection,
		},
		{
			name:      "no response message",
			err:       errors.New("ManagedIdentityCredential: no response from the IMDS endpoint"),
			wantErrIs: errUtils.ErrManagedIdentityConnection,
		},
		{
			name:      "token refused",
			err:       errors.New("identity not found"),
			wantErrIs: errUtils.ErrManagedIdentityToken,
		},
		{
			name:      "cancelled",
			err:       context.Canceled,
			wantErrIs: errUtils.ErrOperationCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.factory.managed.token = "mi-token"
			h.factory.managed.err = tt.err
			m := h.manager(t, testEnv{"FAB_MANAGED_IDENTITY": "true"})

			token, err := m.GetAccessToken(context.Background(), types.ScopeFabric, false)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "mi-token", token)
		})
	}
}

func TestGetAccessToken_ManagedIdentityRebuiltFromStore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.SetMany(map[string]any{
		types.KeyIdentityType: "managed_identity",
		types.KeySPNClientID:  testClient,
	}))
	h.factory.managed.token = "mi-token"
	m := h.manager(t, nil)

	for range 2 {
		token, err := m.GetAccessToken(context.Background(), types.ScopeOneLake, false)
		require.NoError(t, err)
		assert.Equal(t, "mi-token", token)
	}
	assert.Equal(t, []string{"managed"}, h.factory.calls, "credential is built once")
	assert.Equal(t, testClient, h.factory.clientID)
}

func TestGetAccessToken_ServicePrincipalError(t *testing.T) {
	h := newHarness(t)
	h.factory.spn.err = errors.New("AADSTS7000215: invalid client secret")
	m := h.manager(t, testEnv{
		"FAB_TENANT_ID": testTenant, "FAB_SPN_CLIENT_ID": testClient, "FAB_SPN_CLIENT_SECRET": "bad",
	})

	_, err := m.GetAccessToken(context.Background(), types.ScopeFabric, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errUtils.ErrAccessToken)
	assert.Contains(t, err.Error(), "Failed to get access token: AADSTS7000215")
}

func TestGetAccessToken_User(t *testing.T) {
	t.Run("silent miss asks for login", func(t *testing.T) {
		h := newHarness(t)
		m := h.manager(t, nil)
		require.NoError(t, m.SetAccessMode(types.IdentityUser, ""))

		_, err := m.GetAccessToken(context.Background(), types.ScopeFabric, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, errUtils.ErrLoginRequired)
		assert.Contains(t, err.Error(), "No cached token available. Please run 'fab auth login' first.")
		assert.Equal(t, 1, h.factory.user.silentCalls)
		assert.Zero(t, h.factory.user.calls)
	})

	t.Run("interactive renew records the tenant", func(t *testing.T) {
		h := newHarness(t)
		h.factory.user.token = h.signer.sign(fabricAud, map[string]any{"tid": testTenant})
		m := h.manager(t, nil)
		require.NoError(t, m.SetAccessMode(types.IdentityUser, ""))

		token, err := m.GetAccessToken(context.Background(), types.ScopeFabric, true)
		require.NoError(t, err)
		assert.Equal(t, h.factory.user.token, token)
		assert.Equal(t, 1, h.factory.user.calls)
		assert.Equal(t, testTenant, m.TenantID())
		assert.Equal(t, types.IdentityUser, m.IdentityType())
	})

	t.Run("undecodable token leaves tenant alone", func(t *testing.T) {
		h := newHarness(t)
		h.factory.user.silentToken = "opaque"
		m := h.manager(t, nil)
		require.NoError(t, m.SetAccessMode(types.IdentityUser, testTenant))

		token, err := m.GetAccessToken(context.Background(), types.ScopeFabric, false)
		require.NoError(t, err)
		assert.Equal(t, "opaque", token)
		assert.Equal(t, testTenant, m.TenantID())
		assert.Equal(t, testTenant, h.factory.tenant)
	})
}

func TestGetTokenClaims(t *testing.T) {
	h := newHarness(t)
	h.factory.user.silentToken = h.signer.sign(fabricAud, map[string]any{
		"tid": testTenant,
		"upn": testUPN,
		"oid": testObjectID,
	})
	m := h.manager(t, nil)
	require.NoError(t, m.SetAccessMode(types.IdentityUser, testTenant))

	claims, err := m.GetTokenClaims(context.Background(), types.ScopeFabric, []string{"upn", "oid", "tid", "appid"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"upn": testUPN, "oid": testObjectID, "tid": testTenant}, claims)

	claims, err = m.GetTokenClaims(context.Background(), types.ScopeFabric, []string{"appid"})
	require.NoError(t, err)
	assert.Nil(t, claims)
}

func TestGetTokenClaims_PropagatesTokenErrors(t *testing.T) {
	h := newHarness(t)
	m := h.manager(t, nil)

	claims, err := m.GetTokenClaims(context.Background(), types.ScopeFabric, []string{"upn"})
	assert.ErrorIs(t, err, errUtils.ErrNotLoggedIn)
	assert.Nil(t, claims)
	assert.Equal(t, store.IdentityConfig{}, m.Info())
}
