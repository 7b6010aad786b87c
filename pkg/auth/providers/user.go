package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"

	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
)

// ErrNoCachedAccount is returned by GetTokenSilent when nobody has signed in.
var ErrNoCachedAccount = errors.New("no cached account")

// publicClient is the subset of public.Client the user credential calls.
type publicClient interface {
	Accounts(ctx context.Context) ([]public.Account, error)
	AcquireTokenSilent(ctx context.Context, scopes []string, opts ...public.AcquireSilentOption) (public.AuthResult, error)
	AcquireTokenInteractive(ctx context.Context, scopes []string, opts ...public.AcquireInteractiveOption) (public.AuthResult, error)
	AcquireTokenByDeviceCode(ctx context.Context, scopes []string, opts ...public.AcquireByDeviceCodeOption) (public.DeviceCode, error)
}

// userCredential signs a user in with the fab public client. Tokens come
// from the cache when possible, then the browser, then the device code flow
// on machines without a browser.
type userCredential struct {
	client   publicClient
	tenantID string
	// browser reports whether an interactive browser login can be attempted.
	browser    func() bool
	deviceCode func(ctx context.Context, client publicClient, scopes []string) (public.AuthResult, error)
}

// NewUserCredential creates a user credential for tenantID, or for any
// organizational tenant when tenantID is empty.
func NewUserCredential(tenantID string, c cache.ExportReplace) (UserCredential, error) {
	authority := types.Authority(tenantID)
	client, err := public.New(types.PublicClientID,
		public.WithAuthority(authority),
		public.WithCache(c),
	)
	if err != nil {
		return nil, err
	}

	log.Debug("Created MSAL public client", "client_id", types.PublicClientID, "authority", authority)
	return &userCredential{
		client:     &client,
		tenantID:   tenantID,
		browser:    browserAvailable,
		deviceCode: acquireTokenByDeviceCode,
	}, nil
}

// GetToken implements azcore.TokenCredential.
func (c *userCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	tok, err := c.GetTokenSilent(ctx, opts)
	if err == nil {
		return tok, nil
	}
	log.Debug("Silent token acquisition failed, signing in interactively", "error", err)

	if c.browser() {
		result, err := c.client.AcquireTokenInteractive(ctx, opts.Scopes, public.WithRedirectURI(types.DefaultRedirectURL))
		if err == nil {
			return toAccessToken(result), nil
		}
		if ctx.Err() != nil {
			return azcore.AccessToken{}, ctx.Err()
		}
		log.Debug("Browser sign-in failed, falling back to device code", "error", err)
	}

	result, err := c.deviceCode(ctx, c.client, opts.Scopes)
	if err != nil {
		return azcore.AccessToken{}, err
	}
	return toAccessToken(result), nil
}

// GetTokenSilent returns a token from the cache, refreshing it with the
// cached refresh token when needed.
func (c *userCredential) GetTokenSilent(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	accounts, err := c.client.Accounts(ctx)
	if err != nil {
		return azcore.AccessToken{}, fmt.Errorf("reading cached accounts: %w", err)
	}
	if len(accounts) == 0 {
		return azcore.AccessToken{}, ErrNoCachedAccount
	}

	account := accounts[0]
	for _, a := range accounts {
		if c.tenantID != "" && a.Realm == c.tenantID {
			account = a
			break
		}
	}

	result, err := c.client.AcquireTokenSilent(ctx, opts.Scopes, public.WithSilentAccount(account))
	if err != nil {
		return azcore.AccessToken{}, err
	}
	log.Debug("Acquired token silently", "account", account.PreferredUsername, "expires_on", result.ExpiresOn)
	return toAccessToken(result), nil
}

func toAccessToken(r public.AuthResult) azcore.AccessToken {
	return azcore.AccessToken{Token: r.AccessToken, ExpiresOn: r.ExpiresOn}
}

// browserAvailable reports whether a local browser can be launched. Linux
// sessions without a display and SSH sessions use the device code flow.
func browserAvailable() bool {
	if os.Getenv("SSH_CONNECTION") != "" || os.Getenv("SSH_TTY") != "" {
		return false
	}
	if runtime.GOOS == "linux" || runtime.GOOS == "freebsd" {
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}
