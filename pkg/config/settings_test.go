package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
)

func openTestSettings(t *testing.T) *Settings {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), SettingsFileName))
	require.NoError(t, err)
	return s
}

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	s := openTestSettings(t)

	assert.Equal(t, "true", s.Get(KeyCacheEnabled))
	assert.Equal(t, ModeCommandLine, s.Get(KeyMode))
	assert.Equal(t, "", s.Get(KeyDefaultCapacity))
	assert.False(t, s.GetBool(KeyDebugEnabled))
	assert.True(t, s.GetBool(KeyJobCancelOnTimeout))
}

func TestSet_PersistsAndReloads(t *testing.T) {
	s := openTestSettings(t)
	require.NoError(t, s.Set(KeyMode, ModeInteractive))
	require.NoError(t, s.Set(KeyDefaultCapacity, "cap1"))

	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	assert.Equal(t, ModeInteractive, reloaded.Get(KeyMode))
	assert.Equal(t, "cap1", reloaded.Get(KeyDefaultCapacity))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSet_Validation(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		sentinel error
	}{
		{"unknown key", "color", "blue", errUtils.ErrInvalidConfigKey},
		{"bad bool", KeyDebugEnabled, "yes", errUtils.ErrInvalidConfigVal},
		{"bad mode", KeyMode, "batch", errUtils.ErrInvalidConfigVal},
		{"bad output format", KeyOutputFormat, "yaml", errUtils.ErrInvalidConfigVal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestSettings(t)
			err := s.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			_, statErr := os.Stat(s.Path())
			assert.True(t, os.IsNotExist(statErr), "invalid values must not be written")
		})
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	s := openTestSettings(t)
	require.NoError(t, s.SetMany(map[string]string{
		KeyCacheEnabled:          "false",
		KeyDebugEnabled:          "true",
		KeyDefaultOpenExperience: "powerbi",
		KeyDefaultAzLocation:     "westeurope",
		KeyMode:                  ModeInteractive,
	}))

	require.NoError(t, s.Reset(LogoutResetKeys...))

	assert.Equal(t, "true", s.Get(KeyCacheEnabled))
	assert.Equal(t, "false", s.Get(KeyDebugEnabled))
	assert.Equal(t, "fabric", s.Get(KeyDefaultOpenExperience))
	assert.Equal(t, "", s.Get(KeyDefaultAzLocation))
	// mode is not session scoped.
	assert.Equal(t, ModeInteractive, s.Get(KeyMode))
}

func TestAll_ContainsEveryKey(t *testing.T) {
	s := openTestSettings(t)
	all := s.All()
	for _, key := range Keys() {
		assert.Contains(t, all, key)
	}
}

func TestOpen_IgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	data, err := json.Marshal(map[string]any{"mode": "interactive", "legacy_key": "x", "show_hidden": true})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, ModeInteractive, s.Get(KeyMode))
	assert.True(t, s.GetBool(KeyShowHidden))
	assert.NotContains(t, s.All(), "legacy_key")
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.ErrorIs(t, err, errUtils.ErrSettingsRead)
}

func TestDir_HonorsFabOverride(t *testing.T) {
	base := t.TempDir()
	t.Setenv("FAB_XDG_CONFIG_HOME", base)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "fab"), dir)
}
