package xdg

import (
	"fmt"
	"os"
	"path/filepath"

	adrg "github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is the directory created under each XDG base directory.
const AppName = "fab"

// GetXDGConfigDir returns the fab config directory joined with subpath,
// creating it with perm. FAB_XDG_CONFIG_HOME takes precedence over
// XDG_CONFIG_HOME; without either the platform default from adrg/xdg is used.
func GetXDGConfigDir(subpath string, perm os.FileMode) (string, error) {
	return getXDGDir("XDG_CONFIG_HOME", "FAB_XDG_CONFIG_HOME", adrg.ConfigHome, subpath, perm)
}

func getXDGDir(xdgVar, fabVar, fallback, subpath string, perm os.FileMode) (string, error) {
	v := viper.New()
	if err := v.BindEnv(xdgVar, fabVar, xdgVar); err != nil {
		return "", fmt.Errorf("error binding %s environment variables: %w", xdgVar, err)
	}

	base := fallback
	if custom := v.GetString(xdgVar); custom != "" {
		base = custom
	}

	dir := filepath.Join(base, AppName)
	if subpath != "" {
		dir = filepath.Join(dir, subpath)
	}

	if err := os.MkdirAll(dir, perm); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}
