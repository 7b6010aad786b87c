package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fabric-cli/fab/pkg/config"
	log "github.com/fabric-cli/fab/pkg/logger"
)

func newConfigCmd(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change fab settings",
		Args:  cobra.NoArgs,
	}
	configCmd.AddCommand(
		newConfigGetCmd(app),
		newConfigSetCmd(app),
		newConfigLsCmd(app),
	)
	return configCmd
}

func newConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := config.LookupOption(key); !ok {
				return config.Validate(key, "")
			}
			value := app.Settings.Get(key)
			app.Output(cmd).PrintResult(map[string]string{key: value}, func(w io.Writer) {
				fmt.Fprintln(w, value)
			})
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := app.Settings.Set(key, value); err != nil {
				return err
			}
			if key == config.KeyDebugEnabled {
				if _, err := log.Configure(app.Settings.GetBool(key), filepath.Join(app.ConfigDir, config.LogsDirName)); err != nil {
					log.Warn("Failed to reconfigure logging", "error", err)
				}
			}
			app.Output(cmd).PrintSuccess(fmt.Sprintf("Set '%s' to '%s'", key, value))
			return nil
		},
	}
}

func newConfigLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List every setting with its value",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := app.Settings.All()
			app.Output(cmd).PrintResult(all, func(w io.Writer) {
				styles := app.Output(cmd).Styles()
				for _, key := range config.Keys() {
					fmt.Fprintf(w, "%s = %s\n", styles.Label.Render(key), all[key])
				}
			})
			return nil
		},
	}
}
