package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fabric-cli/fab/pkg/auth/store"
	"github.com/fabric-cli/fab/pkg/auth/types"
	"github.com/fabric-cli/fab/pkg/config"
)

func TestLogout_ResetsEverything(t *testing.T) {
	h := newHarness(t)
	m := h.manager(t, testEnv{
		"FAB_TENANT_ID": testTenant, "FAB_SPN_CLIENT_ID": testClient, "FAB_SPN_CLIENT_SECRET": "pw",
	})
	require.NoError(t, os.WriteFile(h.cachePath, []byte("cache"), 0o600))
	require.NoError(t, h.settings.SetMany(map[string]string{
		config.KeyCacheEnabled:              "false",
		config.KeyDebugEnabled:              "true",
		config.KeyShowHidden:                "true",
		config.KeyJobCancelOnTimeout:        "false",
		config.KeyDefaultOpenExperience:     "powerbi",
		config.KeyDefaultCapacity:           "cap",
		config.KeyDefaultAzLocation:         "westeurope",
		config.KeyOutputFormat:              "json",
		config.KeyEncryptionFallbackEnabled: "true",
		config.KeyLocalDefinitionLabels:     "labels.json",
		config.KeyDefaultAzResourceGroup:    "rg",
	}))

	require.NoError(t, m.Logout())

	assert.Nil(t, m.credential)
	assert.NoFileExists(t, h.cachePath)
	assert.Equal(t, store.IdentityConfig{}, m.Info())
	assert.Empty(t, h.store.All())

	data, err := os.ReadFile(h.store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	for _, key := range config.LogoutResetKeys {
		o, ok := config.LookupOption(key)
		require.True(t, ok, key)
		assert.Equal(t, o.Default, h.settings.Get(key), key)
	}
	assert.Equal(t, "json", h.settings.Get(config.KeyOutputFormat), "settings outside the session survive")
	assert.Equal(t, "true", h.settings.Get(config.KeyEncryptionFallbackEnabled))

	_, err = m.GetAccessToken(context.Background(), types.ScopeFabric, false)
	require.Error(t, err)
}

func TestLogout_WithoutCacheFile(t *testing.T) {
	h := newHarness(t)
	m := h.manager(t, nil)

	require.NoError(t, m.Logout())
	assert.NoFileExists(t, h.cachePath)
}

func TestLogout_ResetsSessionSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := NewMockSettings(ctrl)

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, config.AuthFileName))
	require.NoError(t, err)

	m, err := NewManager(Options{
		Store:     st,
		Settings:  settings,
		Factory:   newFakeFactory(),
		CachePath: filepath.Join(dir, config.CacheFileName),
		LookupEnv: testEnv{}.lookup,
	})
	require.NoError(t, err)

	resetKeys := make([]any, 0, len(config.LogoutResetKeys))
	for _, k := range config.LogoutResetKeys {
		resetKeys = append(resetKeys, k)
	}

	settings.EXPECT().Reset(resetKeys...).Return(nil)
	require.NoError(t, m.Logout())

	boom := errors.New("disk full")
	settings.EXPECT().Reset(gomock.Any()).Return(boom).AnyTimes()
	assert.ErrorIs(t, m.Logout(), boom)
}
