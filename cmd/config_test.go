package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/config"
	log "github.com/fabric-cli/fab/pkg/logger"
)

func TestConfigGet(t *testing.T) {
	ta := newTestApp(t)

	out, _, err := ta.run("config", "get", config.KeyOutputFormat)
	require.NoError(t, err)
	assert.Equal(t, "text\n", out)

	out, _, err = ta.run("config", "get", config.KeyMode, "--output_format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"mode": "command_line"`)

	_, _, err = ta.run("config", "get", "colour")
	assert.ErrorIs(t, err, errUtils.ErrInvalidConfigKey)
	assert.Contains(t, errUtils.Hints(err)[0], config.KeyOutputFormat)
}

func TestConfigSet(t *testing.T) {
	ta := newTestApp(t)

	out, _, err := ta.run("config", "set", config.KeyShowHidden, "true")
	require.NoError(t, err)
	assert.Contains(t, out, "Set 'show_hidden' to 'true'")
	assert.True(t, ta.Settings.GetBool(config.KeyShowHidden))

	reopened, err := config.Open(filepath.Join(ta.ConfigDir, config.SettingsFileName))
	require.NoError(t, err)
	assert.Equal(t, "true", reopened.Get(config.KeyShowHidden))

	_, _, err = ta.run("config", "set", config.KeyMode, "batch")
	assert.ErrorIs(t, err, errUtils.ErrInvalidConfigVal)
	assert.Equal(t, config.ModeCommandLine, ta.Settings.Get(config.KeyMode))

	_, _, err = ta.run("config", "set", config.KeyDefaultCapacity)
	require.Error(t, err, "set needs a key and a value")
}

func TestConfigSet_DebugEnabledSwitchesLogger(t *testing.T) {
	ta := newTestApp(t)
	t.Cleanup(func() { _, _ = log.Configure(false, "") })

	_, _, err := ta.run("config", "set", config.KeyDebugEnabled, "true")
	require.NoError(t, err)

	logFile := filepath.Join(ta.ConfigDir, config.LogsDirName, log.DebugLogFileName)
	assert.Equal(t, logFile, log.Default().File())
	_, statErr := os.Stat(logFile)
	assert.NoError(t, statErr)
}

func TestConfigLs(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.Settings.Set(config.KeyDefaultCapacity, "cap1"))

	out, _, err := ta.run("config", "ls")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "cap1")

	out, _, err = ta.run("config", "list", "--output_format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"default_capacity": "cap1"`)
}
