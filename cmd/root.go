package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/config"
	log "github.com/fabric-cli/fab/pkg/logger"
	"github.com/fabric-cli/fab/pkg/ui"
	"github.com/fabric-cli/fab/pkg/version"
)

const (
	flagOutputFormat = "output_format"
	flagVersion      = "version"
	flagVersionShort = "show-version"
)

// NewRootCmd builds the fab command tree around app. Running fab with no
// command starts the interactive shell.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fab",
		Short: "Fabric CLI",
		Long: `fab is a file-system style command line for Microsoft Fabric.

Run it with no command to start interactive mode.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if format, ok := changedFlag(cmd.Flags(), flagOutputFormat); ok {
				if err := config.Validate(config.KeyOutputFormat, format); err != nil {
					return err
				}
			}
			// The shell prints the log path before each line itself.
			if !app.Interactive() && !isAuthCommand(cmd) {
				log.PrintLogFilePath(cmd.ErrOrStderr())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			long, _ := cmd.Flags().GetBool(flagVersion)
			short, _ := cmd.Flags().GetBool(flagVersionShort)
			if long || short {
				app.Output(cmd).Print(version.String())
				return nil
			}
			return app.StartShell(cmd.Context())
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errUtils.Build(errUtils.New(errUtils.ErrInvalidInput, errUtils.StatusInvalidInput, err.Error())).
			WithExitCode(errUtils.ExitCodeCancelledOrMisuse).
			Err()
	})

	root.PersistentFlags().String(flagOutputFormat, "", "Output format, text or json. Overrides the output_format setting")
	root.Flags().BoolP(flagVersion, "v", false, "Show the fab version")
	root.Flags().BoolP(flagVersionShort, "V", false, "Show the fab version")
	_ = root.Flags().MarkHidden(flagVersionShort)

	root.AddCommand(
		newAuthCmd(app),
		newConfigCmd(app),
		newCdCmd(app),
		newPwdCmd(app),
		newVersionCmd(app),
	)
	return root
}

func isAuthCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "auth" && c.HasParent() && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

func unknownCommand(name string) error {
	return errUtils.Newf(errUtils.ErrUnknownCommand, errUtils.StatusUnknownCommand,
		"invalid choice: '%s'. Type 'fab --help' for available commands.", name)
}

// Execute runs fab with args. Errors are printed in the selected output
// format before they are returned; GetExitCode maps them to exit codes.
func Execute(ctx context.Context, args []string) error {
	dir, err := config.Dir()
	if err != nil {
		ui.New(nil, nil, formatFromArgs(args)).PrintError(err)
		return err
	}

	app, err := NewApp(dir, os.LookupEnv)
	if err != nil {
		ui.New(nil, nil, formatFromArgs(args)).PrintError(err)
		return err
	}

	if _, err := log.Configure(app.Settings.GetBool(config.KeyDebugEnabled), filepath.Join(dir, config.LogsDirName)); err != nil {
		log.Warn("Debug logging unavailable", "error", err)
	}

	root := NewRootCmd(app)
	root.SetArgs(args)
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		err = normalizeError(err)
		app.Output(cmd).PrintError(err)
		log.Debug("Command failed", "command", cmd.CommandPath(), "exit_code", errUtils.GetExitCode(err))
	}
	return err
}

// normalizeError turns cobra's unknown-command error into a FabricError.
func normalizeError(err error) error {
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command ") {
		name := strings.TrimPrefix(msg, "unknown command ")
		if i := strings.Index(name, " for "); i >= 0 {
			name = name[:i]
		}
		return unknownCommand(strings.Trim(name, `"`))
	}
	return err
}

// formatFromArgs finds --output_format before the command tree exists.
func formatFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--"+flagOutputFormat && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--"+flagOutputFormat+"="):
			return strings.TrimPrefix(arg, "--"+flagOutputFormat+"=")
		}
	}
	return ui.FormatText
}
