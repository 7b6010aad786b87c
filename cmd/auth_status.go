package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
	"github.com/fabric-cli/fab/pkg/ui/theme"
)

const notLoggedInMessage = "Not logged in to app.fabric.microsoft.com"

var statusClaims = []string{types.ClaimUPN, types.ClaimObjectID, types.ClaimTenantID, types.ClaimAppID}

// authStatus is what `auth status` reports.
type authStatus struct {
	LoggedIn     bool   `json:"logged_in"`
	IdentityType string `json:"identity_type,omitempty"`
	TenantID     string `json:"tenant_id,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	UPN          string `json:"upn,omitempty"`
	ObjectID     string `json:"oid,omitempty"`
	AppID        string `json:"appid,omitempty"`
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current identity",
		Long: `Shows the configured identity and, when a token is available without
prompting, the principal it was issued to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := collectAuthStatus(cmd, app)
			out := app.Output(cmd)
			out.PrintResult(status, func(w io.Writer) {
				renderAuthStatus(w, status)
			})
			return nil
		},
	}
}

func collectAuthStatus(cmd *cobra.Command, app *App) authStatus {
	info := app.Auth.Info()
	status := authStatus{
		IdentityType: info.IdentityType.String(),
		TenantID:     info.TenantID,
		ClientID:     info.ClientID,
	}

	claims, err := app.Auth.GetTokenClaims(cmd.Context(), types.ScopeFabric, statusClaims)
	if err != nil {
		log.Debug("No token for auth status", "error", err)
		status.LoggedIn = info.IdentityType != types.IdentityNone
		return status
	}

	status.LoggedIn = true
	status.UPN = claims[types.ClaimUPN]
	status.ObjectID = claims[types.ClaimObjectID]
	status.AppID = claims[types.ClaimAppID]
	if tid := claims[types.ClaimTenantID]; tid != "" {
		status.TenantID = tid
	}
	return status
}

func renderAuthStatus(w io.Writer, status authStatus) {
	styles := theme.Styles()
	if !status.LoggedIn {
		fmt.Fprintln(w, styles.Warning.Render(theme.IconWarning)+" "+notLoggedInMessage)
		return
	}

	fmt.Fprintln(w, styles.Success.Render(theme.IconSuccess)+" Logged in to app.fabric.microsoft.com")

	rows := [][]string{
		{"Identity type", valueOrDash(status.IdentityType)},
		{"Tenant ID", valueOrDash(status.TenantID)},
	}
	if status.ClientID != "" || status.AppID != "" {
		rows = append(rows, []string{"Client ID", valueOrDash(firstNonEmpty(status.ClientID, status.AppID))})
	}
	if status.UPN != "" {
		rows = append(rows, []string{"Account", status.UPN})
	}
	rows = append(rows, []string{"Object ID", valueOrDash(status.ObjectID)})

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return styles.Label
			}
			return lipgloss.NewStyle()
		}).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
