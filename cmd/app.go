package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fabric-cli/fab/pkg/auth"
	"github.com/fabric-cli/fab/pkg/auth/providers"
	"github.com/fabric-cli/fab/pkg/auth/store"
	"github.com/fabric-cli/fab/pkg/config"
	"github.com/fabric-cli/fab/pkg/hierarchy"
	"github.com/fabric-cli/fab/pkg/interactive"
	log "github.com/fabric-cli/fab/pkg/logger"
	"github.com/fabric-cli/fab/pkg/ui"
)

// App holds the state shared by every command of one fab process. It is
// built once in Execute and handed to each command tree, including the trees
// the interactive shell builds per line.
type App struct {
	Settings *config.Settings
	Auth     auth.AuthManager
	Context  *hierarchy.Context
	// ConfigDir is the directory holding auth.json, config.json and cache.bin.
	ConfigDir string

	stdout io.Writer
	stderr io.Writer
	shell  *interactive.Shell
	// newReader overrides the shell's line reader in tests.
	newReader func() (interactive.LineReader, error)
}

// NewApp opens the settings and auth files in dir and builds the auth
// manager. FAB_* environment identities are applied here.
func NewApp(dir string, lookupEnv func(string) (string, bool)) (*App, error) {
	settings, err := config.Open(filepath.Join(dir, config.SettingsFileName))
	if err != nil {
		return nil, err
	}
	st, err := store.Open(filepath.Join(dir, config.AuthFileName))
	if err != nil {
		return nil, err
	}

	cachePath := filepath.Join(dir, config.CacheFileName)
	manager, err := auth.NewManager(auth.Options{
		Store:    st,
		Settings: settings,
		Factory: &providers.AzureFactory{
			CachePath: cachePath,
			AllowPlaintextCache: func() bool {
				return settings.GetBool(config.KeyEncryptionFallbackEnabled)
			},
		},
		CachePath: cachePath,
		LookupEnv: lookupEnv,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Settings:  settings,
		Auth:      manager,
		Context:   hierarchy.New(),
		ConfigDir: dir,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}, nil
}

// OutputFormat returns the format commands print in: the --output_format
// flag when cmd has it set, otherwise the output_format setting.
func (a *App) OutputFormat(cmd *cobra.Command) string {
	if cmd != nil {
		if value, ok := changedFlag(cmd.Flags(), flagOutputFormat); ok {
			return value
		}
	}
	return a.Settings.Get(config.KeyOutputFormat)
}

// changedFlag returns the value of name when it was given on the command line.
func changedFlag(fs *pflag.FlagSet, name string) (string, bool) {
	f := fs.Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// Output returns a ui.Output on cmd's streams, so the shell can capture what
// a command prints.
func (a *App) Output(cmd *cobra.Command) *ui.Output {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.OutputFormat(cmd))
}

// StartShell runs the interactive shell. A second call while the shell runs
// only prints a notice.
func (a *App) StartShell(ctx context.Context) error {
	if a.shell == nil {
		a.shell = interactive.New(interactive.Options{
			Dispatcher: &commandDispatcher{app: a},
			Output:     ui.New(a.stdout, a.stderr, a.OutputFormat(nil)),
			Path:       a.Context.Path,
			NewReader:  a.newReader,
			BeforeCommand: func() {
				log.PrintLogFilePath(a.stderr)
			},
		})
	}
	return a.shell.Start(ctx)
}

// Interactive reports whether the shell is running.
func (a *App) Interactive() bool {
	return a.shell != nil && a.shell.Running()
}
