package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth"
	"github.com/fabric-cli/fab/pkg/auth/types"
	"github.com/fabric-cli/fab/pkg/config"
	log "github.com/fabric-cli/fab/pkg/logger"
)

type loginMethod string

const (
	loginBrowser         loginMethod = "browser"
	loginSecret          loginMethod = "secret"
	loginCertificate     loginMethod = "certificate"
	loginFederated       loginMethod = "federated"
	loginManagedIdentity loginMethod = "managed_identity"
)

var loginMethodLabels = []struct {
	method loginMethod
	label  string
}{
	{loginBrowser, "Interactive with a web browser"},
	{loginSecret, "Service principal authentication with secret"},
	{loginCertificate, "Service principal authentication with certificate"},
	{loginFederated, "Service principal authentication with federated credential"},
	{loginManagedIdentity, "Managed identity authentication"},
}

const loginSuccessMessage = "Logged in to app.fabric.microsoft.com"

// Swapped in tests so login never waits on a terminal.
var (
	isInteractiveTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	}
	runForm = func(f *huh.Form) error { return f.Run() }
)

type loginOptions struct {
	username       string
	password       string
	certificate    string
	federatedToken string
	tenant         string
	identity       bool
}

func newAuthLoginCmd(app *App) *cobra.Command {
	opts := &loginOptions{}
	c := &cobra.Command{
		Use:   "login",
		Short: "Log in to Fabric",
		Long: `Log in with a user account, a service principal or a managed identity.

Without flags fab asks which method to use, or opens a browser when no
terminal is attached. Service principal secrets are kept in memory only.`,
		Example: `  fab auth login
  fab auth login -t <tenant_id>
  fab auth login -u <client_id> -p <client_secret> -t <tenant_id>
  fab auth login -u <client_id> --certificate ./spn.pem -t <tenant_id>
  fab auth login -u <client_id> --federated-token <token> -t <tenant_id>
  fab auth login --identity [-u <client_id>]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAuthLogin(cmd, app, opts)
		},
	}

	f := c.Flags()
	f.StringVarP(&opts.username, "username", "u", "", "Client ID of the service principal or user-assigned managed identity")
	f.StringVarP(&opts.password, "password", "p", "", "Client secret, or the password of --certificate")
	f.StringVar(&opts.certificate, "certificate", "", "Path to a PEM, PFX or P12 certificate")
	f.StringVar(&opts.federatedToken, "federated-token", "", "Federated token presented as a client assertion")
	f.StringVarP(&opts.tenant, "tenant", "t", "", "Tenant ID")
	f.BoolVar(&opts.identity, "identity", false, "Log in with a managed identity")
	return c
}

func executeAuthLogin(cmd *cobra.Command, app *App, opts *loginOptions) error {
	method, err := opts.method()
	if err != nil {
		return err
	}
	if method == "" {
		if method, err = promptLogin(opts); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if err := login(ctx, app.Auth, method, opts); err != nil {
		return err
	}
	app.Output(cmd).PrintSuccess(loginSuccessMessage)

	if app.Settings.Get(config.KeyMode) == config.ModeInteractive && !app.Interactive() {
		return app.StartShell(ctx)
	}
	return nil
}

// method derives the login method from the flags, or "" when the flags
// leave it open.
func (o *loginOptions) method() (loginMethod, error) {
	if o.identity {
		if o.password != "" || o.certificate != "" || o.federatedToken != "" {
			return "", errUtils.New(errUtils.ErrManagedIdentityIncompatibleVars, errUtils.StatusAuthenticationFailed,
				"--identity cannot be combined with --password, --certificate or --federated-token")
		}
		return loginManagedIdentity, nil
	}

	var method loginMethod
	switch {
	case o.federatedToken != "" && (o.password != "" || o.certificate != ""):
		return "", errUtils.New(errUtils.ErrSPNMissingCredential, errUtils.StatusAuthenticationFailed,
			errUtils.MsgSPNMissingCredential)
	case o.federatedToken != "":
		method = loginFederated
	case o.certificate != "":
		method = loginCertificate
	case o.password != "":
		method = loginSecret
	}

	switch {
	case method != "" && o.username == "":
		return "", errUtils.Build(errUtils.New(errUtils.ErrInvalidInput, errUtils.StatusInvalidInput,
			"--username is required for service principal authentication")).
			WithHint("Pass the client ID of the service principal with -u").
			Err()
	case method == "" && o.username != "":
		return "", errUtils.Build(errUtils.New(errUtils.ErrSPNMissingCredential, errUtils.StatusAuthenticationFailed,
			errUtils.MsgSPNMissingCredential)).
			WithHint("Pass --password, --certificate or --federated-token, or --identity for a managed identity").
			Err()
	case method == "" && o.tenant != "":
		return loginBrowser, nil
	}
	return method, nil
}

// promptLogin asks for the method and the values it needs. Without a
// terminal it falls back to the browser flow.
func promptLogin(opts *loginOptions) (loginMethod, error) {
	if !isInteractiveTerminal() {
		return loginBrowser, nil
	}

	method := loginBrowser
	options := make([]huh.Option[loginMethod], 0, len(loginMethodLabels))
	for _, m := range loginMethodLabels {
		options = append(options, huh.NewOption(m.label, m.method))
	}
	if err := runForm(huh.NewForm(huh.NewGroup(
		huh.NewSelect[loginMethod]().
			Title("How would you like to authenticate Fabric CLI?").
			Options(options...).
			Value(&method),
	))); err != nil {
		return "", promptError(err)
	}

	if fields := loginFields(method, opts); len(fields) > 0 {
		if err := runForm(huh.NewForm(huh.NewGroup(fields...))); err != nil {
			return "", promptError(err)
		}
	}
	return method, nil
}

func loginFields(method loginMethod, opts *loginOptions) []huh.Field {
	required := func(name string) func(string) error {
		return func(s string) error {
			if s == "" {
				return errors.New(name + " is required")
			}
			return nil
		}
	}
	guid := func(name string) func(string) error {
		return func(s string) error {
			return auth.ValidateGUID(s, name)
		}
	}

	tenant := huh.NewInput().Title("Tenant ID").Value(&opts.tenant).Validate(guid("tenant"))
	client := huh.NewInput().Title("Client ID").Value(&opts.username).Validate(guid("client_id"))

	switch method {
	case loginSecret:
		return []huh.Field{tenant, client,
			huh.NewInput().Title("Client secret").EchoMode(huh.EchoModePassword).
				Value(&opts.password).Validate(required("Client secret")),
		}
	case loginCertificate:
		return []huh.Field{tenant, client,
			huh.NewInput().Title("Certificate path").Value(&opts.certificate).Validate(required("Certificate path")),
			huh.NewInput().Title("Certificate password").Description("Leave empty when the key is not encrypted").
				EchoMode(huh.EchoModePassword).Value(&opts.password),
		}
	case loginFederated:
		return []huh.Field{tenant, client,
			huh.NewInput().Title("Federated token").EchoMode(huh.EchoModePassword).
				Value(&opts.federatedToken).Validate(required("Federated token")),
		}
	case loginManagedIdentity:
		return []huh.Field{
			huh.NewInput().Title("Client ID").Description("Leave empty for a system-assigned identity").
				Value(&opts.username).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return auth.ValidateGUID(s, "client_id")
				}),
		}
	default:
		return nil
	}
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errUtils.New(errUtils.ErrOperationCancelled, errUtils.StatusOperationCancelled, "Login cancelled")
	}
	return err
}

// login configures the identity for method and acquires a first token so
// bad credentials fail now rather than on the next command.
func login(ctx context.Context, mgr auth.AuthManager, method loginMethod, opts *loginOptions) error {
	scopes := []types.Scope{types.ScopeFabric}

	switch method {
	case loginBrowser:
		if err := mgr.SetAccessMode(types.IdentityUser, opts.tenant); err != nil {
			return err
		}
		scopes = append(scopes, types.ScopeOneLake, types.ScopeAzure)
	case loginSecret, loginCertificate, loginFederated:
		if opts.tenant != "" {
			if err := mgr.SetTenant(opts.tenant); err != nil {
				return err
			}
		}
		secret := auth.SPNSecret{Password: opts.password, CertPath: opts.certificate, ClientAssertion: opts.federatedToken}
		if err := mgr.SetSPN(ctx, opts.username, secret); err != nil {
			return err
		}
	case loginManagedIdentity:
		if err := mgr.SetManagedIdentity(ctx, opts.username); err != nil {
			return err
		}
	default:
		return errUtils.Newf(errUtils.ErrInvalidInput, errUtils.StatusInvalidInput, "Unknown login method '%s'", method)
	}

	for _, scope := range scopes {
		log.Debug("Acquiring token", "scope", scope, "method", method)
		if _, err := mgr.GetAccessToken(ctx, scope, true); err != nil {
			return err
		}
	}
	return nil
}
