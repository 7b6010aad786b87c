package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/types"
)

const (
	testTenant = "11111111-1111-1111-1111-111111111111"
	testClient = "22222222-2222-2222-2222-222222222222"
)

func readRecord(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	return rec
}

func TestOpen_MissingAndEmptyFile(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(filepath.Join(dir, "auth.json"))
	require.NoError(t, err)
	assert.Empty(t, s.All())
	assert.Equal(t, IdentityConfig{}, s.Identity())

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	s, err = Open(empty)
	require.NoError(t, err)
	assert.Empty(t, s.All())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetMany(map[string]any{
		types.KeyTenantID:     testTenant,
		types.KeySPNClientID:  testClient,
		types.KeyIdentityType: string(types.IdentityServicePrincipal),
	}))

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, s.Identity(), reloaded.Identity())
	assert.Equal(t, IdentityConfig{
		IdentityType: types.IdentityServicePrincipal,
		TenantID:     testTenant,
		ClientID:     testClient,
	}, reloaded.Identity())

	rec := readRecord(t, path)
	assert.Len(t, rec, 3)
	for key := range rec {
		assert.NotContains(t, key, "secret")
		assert.NotContains(t, key, "password")
		assert.NotContains(t, key, "token")
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_Migrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	legacy := `{"fab_auth_mode":"user","fab_authority":"https://login.microsoftonline.com/common","fab_tenant_id":"` + testTenant + `"}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, types.IdentityUser, s.Identity().IdentityType)

	rec := readRecord(t, path)
	assert.Equal(t, "user", rec[types.KeyIdentityType])
	assert.NotContains(t, rec, types.LegacyKeyAuthMode)
	assert.NotContains(t, rec, types.LegacyKeyAuthority)
	assert.Equal(t, testTenant, rec[types.KeyTenantID])
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := Open(path)
	assert.ErrorIs(t, err, errUtils.ErrAuthFileRead)
}

func TestSetMany_DecodesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetMany(map[string]any{
		"raw": []byte("bytes"),
		"nested": map[string]any{
			"inner": []byte("value"),
			"n":     1,
		},
	}))

	assert.Equal(t, "bytes", s.GetString("raw"))

	var nested map[string]any
	require.NoError(t, json.Unmarshal([]byte(s.GetString("nested")), &nested))
	assert.Equal(t, "value", nested["inner"])
	assert.EqualValues(t, 1, nested["n"])
}

func TestSetAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set(types.KeyTenantID, testTenant))
	v, ok := s.Get(types.KeyTenantID)
	assert.True(t, ok)
	assert.Equal(t, testTenant, v)
	assert.Equal(t, testTenant, readRecord(t, path)[types.KeyTenantID])

	require.NoError(t, s.Clear())
	assert.Empty(t, s.All())
	assert.Empty(t, readRecord(t, path))
	assert.Equal(t, "", s.GetString(types.KeyTenantID))
}

func TestIdentity_ToleratesLooseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"identity_type": "managed_identity",
		"fab_spn_client_id": null,
		"fab_tenant_id": "`+testTenant+`",
		"unrelated": {"a": 1}
	}`), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, IdentityConfig{
		IdentityType: types.IdentityManagedIdentity,
		TenantID:     testTenant,
	}, s.Identity())
}
