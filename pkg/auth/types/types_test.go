package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
)

func TestIdentityType_Validate(t *testing.T) {
	for _, it := range IdentityTypes() {
		assert.NoError(t, it.Validate(), it.String())
	}

	for _, bad := range []IdentityType{IdentityNone, "spn", "User"} {
		err := bad.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, errUtils.ErrInvalidIdentityType)
		assert.Equal(t, errUtils.StatusInvalidAccessMode, errUtils.StatusCode(err))
		assert.Contains(t, err.Error(), "service_principal")
	}
}

func TestParseIdentityType(t *testing.T) {
	it, err := ParseIdentityType("managed_identity")
	require.NoError(t, err)
	assert.Equal(t, IdentityManagedIdentity, it)

	_, err = ParseIdentityType("robot")
	assert.ErrorIs(t, err, errUtils.ErrInvalidIdentityType)
}

func TestScope_AudienceAndEnvVar(t *testing.T) {
	tests := []struct {
		scope    Scope
		audience string
		envVar   string
	}{
		{ScopeFabric, "https://api.fabric.microsoft.com", EnvToken},
		{ScopeOneLake, "https://storage.azure.com", EnvTokenOneLake},
		{ScopeAzure, "https://management.azure.com", EnvTokenAzure},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			aud, err := tt.scope.Audience()
			require.NoError(t, err)
			assert.Equal(t, tt.audience, aud)

			env, err := tt.scope.TokenEnvVar()
			require.NoError(t, err)
			assert.Equal(t, tt.envVar, env)
		})
	}

	_, err := Scope("https://graph.microsoft.com/.default").Audience()
	assert.ErrorIs(t, err, errUtils.ErrInvalidScope)
}

func TestAuthority(t *testing.T) {
	assert.Equal(t, "https://login.microsoftonline.com/organizations", Authority(""))
	assert.Equal(t, "https://login.microsoftonline.com/contoso", Authority("contoso"))
}
