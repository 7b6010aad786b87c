package auth

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/jwt"
	"github.com/fabric-cli/fab/pkg/auth/providers"
	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
)

// GetAccessToken returns a token for scope. FAB_TOKEN and FAB_TOKEN_ONELAKE
// take precedence over any configured identity. For users, interactiveRenew
// allows a browser or device code sign-in when the cache has no token.
func (m *Manager) GetAccessToken(ctx context.Context, scope types.Scope, interactiveRenew bool) (string, error) {
	token, ok, err := m.tokenFromEnvironment(ctx, scope)
	if err != nil || ok {
		return token, err
	}

	identity := m.IdentityType()
	cred, err := m.getCredential()
	if err != nil {
		return "", err
	}

	opts := policy.TokenRequestOptions{Scopes: []string{string(scope)}}
	var at azcore.AccessToken

	userCred, isUser := cred.(providers.UserCredential)
	if isUser && !interactiveRenew {
		at, err = userCred.GetTokenSilent(ctx, opts)
		if err != nil {
			log.Debug("Silent token acquisition failed", "scope", scope, "error", err)
			return "", errUtils.New(errUtils.ErrLoginRequired, errUtils.StatusAuthenticationFailed,
				errUtils.AccessTokenError(errUtils.MsgNoCachedToken))
		}
	} else {
		at, err = cred.GetToken(ctx, opts)
		if err != nil {
			return "", convertTokenError(identity, err)
		}
	}

	if identity == types.IdentityUser {
		m.updateTenantFromToken(ctx, at.Token)
	}
	return at.Token, nil
}

// GetTokenClaims acquires a token silently and returns the requested claims
// it carries, or nil when it carries none of them.
func (m *Manager) GetTokenClaims(ctx context.Context, scope types.Scope, names []string) (map[string]string, error) {
	token, err := m.GetAccessToken(ctx, scope, false)
	if err != nil {
		return nil, err
	}
	claims, err := m.decoder.Decode(ctx, token, "")
	if err != nil {
		return nil, err
	}
	return jwt.Select(claims, names), nil
}

// tokenFromEnvironment returns the FAB_TOKEN* token for scope. ok is false
// when neither FAB_TOKEN nor FAB_TOKEN_ONELAKE is set.
func (m *Manager) tokenFromEnvironment(ctx context.Context, scope types.Scope) (token string, ok bool, err error) {
	_, hasFabric := m.lookupEnv(types.EnvToken)
	_, hasOneLake := m.lookupEnv(types.EnvTokenOneLake)

	switch {
	case hasFabric && hasOneLake:
	case hasFabric || hasOneLake:
		return "", false, errUtils.New(errUtils.ErrFabricAndOneLakeTokensRequired, errUtils.StatusAuthenticationFailed,
			errUtils.MsgFabricAndOneLakeTokensRequired)
	default:
		return "", false, nil
	}

	envVar, err := scope.TokenEnvVar()
	if err != nil {
		return "", false, err
	}
	token, found := m.lookupEnv(envVar)
	if !found {
		return "", false, errUtils.New(errUtils.ErrAzureTokenRequired, errUtils.StatusAuthenticationFailed,
			errUtils.MsgAzureTokenRequired)
	}

	audience, err := scope.Audience()
	if err != nil {
		return "", false, err
	}
	if _, err := m.decoder.Decode(ctx, token, audience); err != nil {
		return "", false, err
	}

	log.Debug("Using access token from environment", "variable", envVar)
	return token, true, nil
}

// getCredential returns the live credential, building it from the stored
// identity when possible. Service principal secrets are never stored, so a
// service principal without a live credential must log in again.
func (m *Manager) getCredential() (azcore.TokenCredential, error) {
	if m.credential != nil {
		return m.credential, nil
	}

	info := m.store.Identity()
	var (
		cred azcore.TokenCredential
		err  error
	)
	switch info.IdentityType {
	case types.IdentityManagedIdentity:
		cred, err = m.factory.ManagedIdentity(info.ClientID)
	case types.IdentityUser:
		cred, err = m.factory.User(info.TenantID)
	case types.IdentityServicePrincipal:
		return nil, errUtils.New(errUtils.ErrSPNReauthRequired, errUtils.StatusAuthenticationFailed,
			errUtils.MsgSPNReauthRequired)
	case types.IdentityNone:
		return nil, errUtils.New(errUtils.ErrNotLoggedIn, errUtils.StatusAuthenticationFailed, errUtils.MsgNotLoggedIn)
	default:
		log.Debug("Unknown identity type in auth file", "identity_type", info.IdentityType)
		return nil, errUtils.New(errUtils.ErrNotLoggedIn, errUtils.StatusAuthenticationFailed, errUtils.MsgNotLoggedIn)
	}
	if err != nil {
		return nil, credentialError(err)
	}

	m.credential = cred
	return cred, nil
}

// updateTenantFromToken records the tenant a user signed in to. Failures are
// logged and otherwise ignored.
func (m *Manager) updateTenantFromToken(ctx context.Context, token string) {
	claims, err := m.decoder.Decode(ctx, token, "")
	if err != nil {
		log.Debug("Could not decode user token to read the tenant", "error", err)
		return
	}
	tid := jwt.Select(claims, []string{types.ClaimTenantID})[types.ClaimTenantID]
	if tid == "" || tid == m.TenantID() {
		return
	}
	if err := m.SetTenant(tid); err != nil {
		log.Debug("Could not store tenant from token", "tenant", tid, "error", err)
	}
}

// credentialError keeps user-facing errors and turns anything else into an
// access token failure.
func credentialError(err error) error {
	var fe *errUtils.FabricError
	if errUtils.As(err, &fe) {
		return err
	}
	return errUtils.New(errUtils.ErrAccessToken, errUtils.StatusAuthenticationFailed, errUtils.AccessTokenError(err.Error()))
}

// convertTokenError maps a provider failure to the error shown to the user.
func convertTokenError(identity types.IdentityType, err error) error {
	log.Debug("Token acquisition failed", "identity_type", identity, "error", err)

	if errors.Is(err, context.Canceled) {
		return errUtils.New(errUtils.ErrOperationCancelled, errUtils.StatusOperationCancelled, "Operation cancelled")
	}
	var fe *errUtils.FabricError
	if errUtils.As(err, &fe) {
		return err
	}

	if identity == types.IdentityManagedIdentity {
		if isConnectionError(err) {
			return errUtils.New(errUtils.ErrManagedIdentityConnection, errUtils.StatusAuthenticationFailed,
				errUtils.MsgManagedIdentityConnectionFailed)
		}
		return errUtils.New(errUtils.ErrManagedIdentityToken, errUtils.StatusAuthenticationFailed,
			errUtils.MsgManagedIdentityTokenFailed)
	}
	return errUtils.New(errUtils.ErrAccessToken, errUtils.StatusAuthenticationFailed, errUtils.AccessTokenError(err.Error()))
}

// isConnectionError reports whether err means the token endpoint could not
// be reached. azidentity flattens transport errors into its own message for
// managed identity, so the message is checked as well.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "no response", "timed out", "unreachable"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
