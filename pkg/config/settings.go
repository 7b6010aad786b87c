package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/filesystem"
	log "github.com/fabric-cli/fab/pkg/logger"
	"github.com/fabric-cli/fab/pkg/xdg"
)

// File names inside the fab config directory.
const (
	SettingsFileName = "config.json"
	AuthFileName     = "auth.json"
	CacheFileName    = "cache.bin"
	LogsDirName      = "logs"

	configDirPerms = 0o700
	fileMode       = 0o600
)

// Setting keys.
const (
	KeyCacheEnabled              = "cache_enabled"
	KeyDebugEnabled              = "debug_enabled"
	KeyShowHidden                = "show_hidden"
	KeyJobCancelOnTimeout        = "job_cancel_ontimeout"
	KeyDefaultOpenExperience     = "default_open_experience"
	KeyEncryptionFallbackEnabled = "encryption_fallback_enabled"
	KeyMode                      = "mode"
	KeyOutputFormat              = "output_format"
	KeyOutputItemSortCriteria    = "output_item_sort_criteria"
	KeyLocalDefinitionLabels     = "local_definition_labels"
	KeyDefaultCapacity           = "default_capacity"
	KeyDefaultCapacityID         = "default_capacity_id"
	KeyDefaultAzSubscriptionID   = "default_az_subscription_id"
	KeyDefaultAzAdmin            = "default_az_admin"
	KeyDefaultAzResourceGroup    = "default_az_resource_group"
	KeyDefaultAzLocation         = "default_az_location"
)

// Values of the mode setting.
const (
	ModeInteractive = "interactive"
	ModeCommandLine = "command_line"
)

var boolValues = []string{"true", "false"}

// Option describes one setting: its default and, when restricted, the
// values it accepts.
type Option struct {
	Key     string
	Default string
	Allowed []string
}

var options = []Option{
	{Key: KeyCacheEnabled, Default: "true", Allowed: boolValues},
	{Key: KeyDebugEnabled, Default: "false", Allowed: boolValues},
	{Key: KeyShowHidden, Default: "false", Allowed: boolValues},
	{Key: KeyJobCancelOnTimeout, Default: "true", Allowed: boolValues},
	{Key: KeyDefaultOpenExperience, Default: "fabric", Allowed: []string{"fabric", "powerbi"}},
	{Key: KeyEncryptionFallbackEnabled, Default: "false", Allowed: boolValues},
	{Key: KeyMode, Default: ModeCommandLine, Allowed: []string{ModeInteractive, ModeCommandLine}},
	{Key: KeyOutputFormat, Default: "text", Allowed: []string{"text", "json"}},
	{Key: KeyOutputItemSortCriteria, Default: "byname", Allowed: []string{"byname", "bytype"}},
	{Key: KeyLocalDefinitionLabels},
	{Key: KeyDefaultCapacity},
	{Key: KeyDefaultCapacityID},
	{Key: KeyDefaultAzSubscriptionID},
	{Key: KeyDefaultAzAdmin},
	{Key: KeyDefaultAzResourceGroup},
	{Key: KeyDefaultAzLocation},
}

// LogoutResetKeys are the settings scoped to a login session. Logout puts
// each of them back to its default.
var LogoutResetKeys = []string{
	KeyCacheEnabled,
	KeyDebugEnabled,
	KeyShowHidden,
	KeyJobCancelOnTimeout,
	KeyDefaultOpenExperience,
	KeyLocalDefinitionLabels,
	KeyDefaultCapacity,
	KeyDefaultCapacityID,
	KeyDefaultAzSubscriptionID,
	KeyDefaultAzAdmin,
	KeyDefaultAzResourceGroup,
	KeyDefaultAzLocation,
}

// LookupOption returns the option registered for key.
func LookupOption(key string) (Option, bool) {
	for _, o := range options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Keys returns every known setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(options))
	for _, o := range options {
		keys = append(keys, o.Key)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns the fab config directory, creating it when missing.
func Dir() (string, error) {
	dir, err := xdg.GetXDGConfigDir("", configDirPerms)
	if err != nil {
		return "", errors.Join(errUtils.ErrConfigDir, err)
	}
	return dir, nil
}

// Settings is the config.json store. Reads go through viper with every
// option's default registered; writes replace the file atomically under a
// lock file.
type Settings struct {
	path   string
	v      *viper.Viper
	values map[string]string
}

// Open loads the settings file at path. A missing file yields defaults.
func Open(path string) (*Settings, error) {
	s := &Settings{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Settings) Path() string {
	return s.path
}

func (s *Settings) load() error {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	for _, o := range options {
		v.SetDefault(o.Key, o.Default)
	}

	s.values = map[string]string{}
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		if err := v.ReadInConfig(); err != nil {
			return errors.Join(errUtils.ErrSettingsRead, err)
		}
		for _, key := range v.AllKeys() {
			if _, known := LookupOption(key); !known {
				log.Debug("Ignoring unknown setting", "key", key, "file", s.path)
				continue
			}
			s.values[key] = v.GetString(key)
		}
	}
	s.v = v
	return nil
}

// Get returns the value of key, or its default when unset.
func (s *Settings) Get(key string) string {
	if value, ok := s.values[key]; ok {
		return value
	}
	return s.v.GetString(key)
}

// GetBool reports whether key holds "true".
func (s *Settings) GetBool(key string) bool {
	return strings.EqualFold(s.Get(key), "true")
}

// All returns every known setting with its effective value.
func (s *Settings) All() map[string]string {
	all := make(map[string]string, len(options))
	for _, o := range options {
		all[o.Key] = s.Get(o.Key)
	}
	return all
}

// Validate checks key is known and value allowed for it.
func Validate(key, value string) error {
	o, ok := LookupOption(key)
	if !ok {
		return errUtils.Build(errUtils.Newf(errUtils.ErrInvalidConfigKey, errUtils.StatusInvalidConfigKey,
			"Invalid config key '%s'", key)).
			WithHintf("Supported keys: %s", strings.Join(Keys(), ", ")).
			Err()
	}
	if len(o.Allowed) == 0 {
		return nil
	}
	for _, allowed := range o.Allowed {
		if value == allowed {
			return nil
		}
	}
	return errUtils.Newf(errUtils.ErrInvalidConfigVal, errUtils.StatusInvalidConfigValue,
		"Invalid value '%s' for '%s'. Allowed values: %s", value, key, strings.Join(o.Allowed, ", "))
}

// Set validates and persists one setting.
func (s *Settings) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

// SetMany validates every pair before persisting any of them.
func (s *Settings) SetMany(values map[string]string) error {
	for key, value := range values {
		if err := Validate(key, value); err != nil {
			return err
		}
	}
	return s.update(func(current map[string]string) {
		for key, value := range values {
			current[key] = value
		}
	})
}

// Reset puts keys back to their defaults.
func (s *Settings) Reset(keys ...string) error {
	for _, key := range keys {
		if _, ok := LookupOption(key); !ok {
			return Validate(key, "")
		}
	}
	return s.update(func(current map[string]string) {
		for _, key := range keys {
			o, _ := LookupOption(key)
			current[key] = o.Default
		}
	})
}

func (s *Settings) update(apply func(map[string]string)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), configDirPerms); err != nil {
		return errors.Join(errUtils.ErrConfigDir, err)
	}

	return filesystem.WithFileLock(s.path, func() error {
		// Another fab process may have written since we loaded.
		if err := s.load(); err != nil {
			return err
		}
		apply(s.values)

		data, err := json.MarshalIndent(s.values, "", "  ")
		if err != nil {
			return errors.Join(errUtils.ErrSettingsWrite, err)
		}
		if err := filesystem.WriteFileAtomic(s.path, data, fileMode); err != nil {
			return errors.Join(errUtils.ErrSettingsWrite, err)
		}
		return nil
	})
}
