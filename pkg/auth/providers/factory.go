package providers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/fabric-cli/fab/pkg/auth/certs"
	"github.com/fabric-cli/fab/pkg/auth/tokencache"
	log "github.com/fabric-cli/fab/pkg/logger"
)

// UserCredential is a credential for a signed-in user. GetTokenSilent only
// consults the token cache and never prompts.
type UserCredential interface {
	azcore.TokenCredential
	GetTokenSilent(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error)
}

// Factory constructs the credential for each identity type.
type Factory interface {
	ManagedIdentity(clientID string) (azcore.TokenCredential, error)
	ClientSecret(tenantID, clientID, secret string) (azcore.TokenCredential, error)
	Certificate(tenantID, clientID string, material *certs.Material) (azcore.TokenCredential, error)
	ClientAssertion(tenantID, clientID, assertion string) (azcore.TokenCredential, error)
	User(tenantID string) (UserCredential, error)
}

// AzureFactory builds credentials with azidentity and MSAL. User tokens are
// persisted to CachePath.
type AzureFactory struct {
	CachePath string
	// AllowPlaintextCache reports whether the cache may be stored
	// unencrypted. It is read each time a user credential is built.
	AllowPlaintextCache func() bool
}

var _ Factory = (*AzureFactory)(nil)

// ManagedIdentity returns a system-assigned credential when clientID is
// empty, otherwise a user-assigned one.
func (f *AzureFactory) ManagedIdentity(clientID string) (azcore.TokenCredential, error) {
	log.Debug("Creating managed identity credential", "client_id", displayClientID(clientID))
	opts := &azidentity.ManagedIdentityCredentialOptions{}
	if clientID != "" {
		opts.ID = azidentity.ClientID(clientID)
	}
	return azidentity.NewManagedIdentityCredential(opts)
}

// ClientSecret returns a service principal credential backed by a secret.
func (f *AzureFactory) ClientSecret(tenantID, clientID, secret string) (azcore.TokenCredential, error) {
	log.Debug("Creating client secret credential", "tenant", tenantID, "client_id", clientID)
	return azidentity.NewClientSecretCredential(tenantID, clientID, secret, nil)
}

// Certificate returns a service principal credential backed by a certificate.
func (f *AzureFactory) Certificate(tenantID, clientID string, material *certs.Material) (azcore.TokenCredential, error) {
	log.Debug("Creating client certificate credential", "tenant", tenantID, "client_id", clientID, "thumbprint", material.Thumbprint)
	return azidentity.NewClientCertificateCredential(tenantID, clientID, material.Certificates, material.PrivateKey, nil)
}

// ClientAssertion returns a service principal credential that presents a
// federated token.
func (f *AzureFactory) ClientAssertion(tenantID, clientID, assertion string) (azcore.TokenCredential, error) {
	log.Debug("Creating client assertion credential", "tenant", tenantID, "client_id", clientID)
	return azidentity.NewClientAssertionCredential(tenantID, clientID, func(context.Context) (string, error) {
		return assertion, nil
	}, nil)
}

// User returns an MSAL public-client credential with the persistent token
// cache attached.
func (f *AzureFactory) User(tenantID string) (UserCredential, error) {
	allowPlaintext := f.AllowPlaintextCache != nil && f.AllowPlaintextCache()
	tc, err := tokencache.New(f.CachePath, allowPlaintext)
	if err != nil {
		return nil, err
	}

	cred, err := NewUserCredential(tenantID, tc)
	if err != nil {
		return nil, fmt.Errorf("failed to create user credential: %w", err)
	}
	return cred, nil
}

func displayClientID(clientID string) string {
	if clientID == "" {
		return "system-assigned"
	}
	return clientID
}
