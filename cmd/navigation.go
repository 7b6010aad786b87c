package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fabric-cli/fab/pkg/version"
)

func newCdCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cd <path>",
		Short: "Change the current location",
		Long: `Change the current location in the Fabric hierarchy.

Paths name elements as <name>.<type>, for example "Sales.Workspace/Q1.Folder".
".." moves up, "/" is the tenant root and "~" is your personal workspace.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Context.Cd(args[0]); err != nil {
				return err
			}
			app.Output(cmd).PrintSuccess(fmt.Sprintf("Switched to '%s'", app.Context.Path()))
			return nil
		},
	}
}

func newPwdCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the current location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.Context.Path()
			app.Output(cmd).PrintResult(map[string]string{"path": path}, func(w io.Writer) {
				fmt.Fprintln(w, path)
			})
			return nil
		},
	}
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the fab version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.Output(cmd).PrintResult(map[string]string{"version": version.Get(), "platform": version.Platform()}, func(w io.Writer) {
				fmt.Fprintln(w, version.String())
			})
			return nil
		},
	}
}
