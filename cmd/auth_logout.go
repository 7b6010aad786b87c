package cmd

import (
	"github.com/spf13/cobra"
)

const logoutSuccessMessage = "Logged out of Fabric account"

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove cached credentials",
		Long: `Clears the stored identity, deletes the token cache and resets the
session-scoped settings to their defaults.

Your browser session with Microsoft Entra ID may still be active.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Auth.Logout(); err != nil {
				return err
			}
			app.Output(cmd).PrintSuccess(logoutSuccessMessage)
			return nil
		},
	}
}
