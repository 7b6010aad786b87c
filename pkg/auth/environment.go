package auth

import (
	"context"
	"strings"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/certs"
	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
)

// managedIdentityEnabled reports whether FAB_MANAGED_IDENTITY asks for a
// managed identity. "true" matches in any case.
func managedIdentityEnabled(lookup func(string) (string, bool)) bool {
	v, _ := lookup(types.EnvManagedIdentity)
	return strings.EqualFold(v, "true") || v == "1"
}

func validateEnvironment(lookup func(string) (string, bool)) error {
	_, hasSecret := lookup(types.EnvSPNClientSecret)
	_, hasCert := lookup(types.EnvSPNCertPath)
	_, hasFederated := lookup(types.EnvSPNFederatedToken)

	if managedIdentityEnabled(lookup) {
		if hasSecret || hasCert || hasFederated {
			return errUtils.New(errUtils.ErrManagedIdentityIncompatibleVars, errUtils.StatusAuthenticationFailed,
				errUtils.MsgManagedIdentityIncompatibleVars)
		}
		return nil
	}

	if _, hasClient := lookup(types.EnvSPNClientID); !hasClient {
		return nil
	}
	if _, hasTenant := lookup(types.EnvTenantID); !hasTenant {
		return errUtils.New(errUtils.ErrTenantIDRequired, errUtils.StatusAuthenticationFailed,
			errUtils.MsgTenantIDEnvVarRequired)
	}

	forms := 0
	for _, set := range []bool{hasSecret, hasCert, hasFederated} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return errUtils.New(errUtils.ErrSPNMissingCredential, errUtils.StatusAuthenticationFailed,
			errUtils.MsgSPNMissingCredential)
	}
	return nil
}

// loadEnvironment applies the identity described by FAB_* variables: the
// tenant first, then a service principal or a managed identity.
func (m *Manager) loadEnvironment(ctx context.Context) error {
	if tenantID, ok := m.lookupEnv(types.EnvTenantID); ok {
		if err := ValidateGUID(tenantID, types.EnvTenantID); err != nil {
			return err
		}
		if err := m.SetTenant(tenantID); err != nil {
			return err
		}
	}

	clientID, hasClient := m.lookupEnv(types.EnvSPNClientID)
	if hasClient {
		if err := ValidateGUID(clientID, types.EnvSPNClientID); err != nil {
			return err
		}
	}

	secret, hasSecret := m.lookupEnv(types.EnvSPNClientSecret)
	certPath, hasCert := m.lookupEnv(types.EnvSPNCertPath)
	federated, hasFederated := m.lookupEnv(types.EnvSPNFederatedToken)

	switch {
	case hasClient && hasSecret:
		log.Debug("Using service principal secret from environment", "client_id", clientID)
		return m.SetSPN(ctx, clientID, SPNSecret{Password: secret})
	case hasClient && hasCert:
		if err := certs.ValidatePath(certPath, types.EnvSPNCertPath); err != nil {
			return err
		}
		password, _ := m.lookupEnv(types.EnvSPNCertPassword)
		log.Debug("Using service principal certificate from environment", "client_id", clientID, "path", certPath)
		return m.SetSPN(ctx, clientID, SPNSecret{CertPath: certPath, Password: password})
	case hasClient && hasFederated:
		log.Debug("Using service principal federated token from environment", "client_id", clientID)
		return m.SetSPN(ctx, clientID, SPNSecret{ClientAssertion: federated})
	case managedIdentityEnabled(m.lookupEnv):
		log.Debug("Using managed identity from environment", "client_id", clientID)
		return m.SetManagedIdentity(ctx, clientID)
	}
	return nil
}
