package cmd

import (
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate fab with Fabric",
		Long: `Manage the identity fab uses to call Fabric, OneLake and Azure.

Identities can also come from the environment: FAB_SPN_CLIENT_ID with
FAB_SPN_CLIENT_SECRET, FAB_SPN_CERT_PATH or FAB_SPN_FEDERATED_TOKEN,
FAB_MANAGED_IDENTITY, or ready-made tokens in FAB_TOKEN and FAB_TOKEN_ONELAKE.`,
		Args: cobra.NoArgs,
	}
	authCmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthLogoutCmd(app),
		newAuthStatusCmd(app),
	)
	return authCmd
}
