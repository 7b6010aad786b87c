package auth

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	errUtils "github.com/fabric-cli/fab/errors"
	"github.com/fabric-cli/fab/pkg/auth/certs"
	"github.com/fabric-cli/fab/pkg/auth/types"
	log "github.com/fabric-cli/fab/pkg/logger"
)

const (
	paramTenant   = "tenant"
	paramClientID = "client_id"
)

// SetAccessMode switches to mode. Switching to a different mode logs out
// first. tenantID, when given and different from the stored one, replaces it.
func (m *Manager) SetAccessMode(mode types.IdentityType, tenantID string) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	if current := m.IdentityType(); current != mode {
		log.Debug("Access mode changed, logging out", "previous", current, "identity_type", mode)
		if err := m.Logout(); err != nil {
			return err
		}
	}

	if tenantID != "" && tenantID != m.TenantID() {
		if err := m.SetTenant(tenantID); err != nil {
			return err
		}
	}

	return m.store.Set(types.KeyIdentityType, mode.String())
}

// SetTenant stores tenantID. Replacing a different tenant logs out first.
func (m *Manager) SetTenant(tenantID string) error {
	if err := ValidateGUID(tenantID, paramTenant); err != nil {
		return err
	}

	current := m.TenantID()
	if current == tenantID {
		return nil
	}
	if current != "" {
		log.Warn("Tenant ID already set, logging out", "previous", current, "tenant", tenantID)
		if err := m.Logout(); err != nil {
			return err
		}
	}
	return m.store.Set(types.KeyTenantID, tenantID)
}

// SetSPN configures a service principal and builds its credential. Secrets
// stay in memory; only the client id and identity type are written.
func (m *Manager) SetSPN(ctx context.Context, clientID string, secret SPNSecret) error {
	if secret.Password == "" && secret.CertPath == "" && secret.ClientAssertion == "" {
		return errUtils.New(errUtils.ErrSPNMissingCredential, errUtils.StatusAuthenticationFailed,
			errUtils.MsgSPNMissingCredential)
	}
	if err := ValidateGUID(clientID, paramClientID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tenantID := m.TenantID()
	if tenantID == "" {
		return errUtils.Build(errUtils.New(errUtils.ErrTenantIDRequired, errUtils.StatusAuthenticationFailed,
			"A tenant ID is required for service principal authentication")).
			WithHint("Pass --tenant or set " + types.EnvTenantID).
			Err()
	}

	cred, err := m.newSPNCredential(tenantID, clientID, secret)
	if err != nil {
		return err
	}

	if err := m.resetIfChanged(types.IdentityServicePrincipal, clientID); err != nil {
		return err
	}

	// A logout above drops the tenant; the new identity still belongs to it.
	if err := m.store.SetMany(map[string]any{
		types.KeyTenantID:     tenantID,
		types.KeySPNClientID:  clientID,
		types.KeyIdentityType: types.IdentityServicePrincipal.String(),
	}); err != nil {
		return err
	}

	m.credential = cred
	return nil
}

// SetManagedIdentity configures a managed identity, user-assigned when
// clientID is set and system-assigned otherwise, and builds its credential.
func (m *Manager) SetManagedIdentity(ctx context.Context, clientID string) error {
	if clientID != "" {
		if err := ValidateGUID(clientID, paramClientID); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cred, err := m.factory.ManagedIdentity(clientID)
	if err != nil {
		return credentialError(err)
	}

	if err := m.resetIfChanged(types.IdentityManagedIdentity, clientID); err != nil {
		return err
	}

	var storedClientID any
	if clientID != "" {
		storedClientID = clientID
	}
	if err := m.store.SetMany(map[string]any{
		types.KeySPNClientID:  storedClientID,
		types.KeyIdentityType: types.IdentityManagedIdentity.String(),
	}); err != nil {
		return err
	}

	m.credential = cred
	return nil
}

// resetIfChanged logs out when the stored client id or identity type
// differs from the one about to be configured.
func (m *Manager) resetIfChanged(identity types.IdentityType, clientID string) error {
	current := m.store.Identity()
	switch {
	case current.ClientID != "" && current.ClientID != clientID:
		log.Warn("Client ID already set, clearing the existing auth tokens", "previous", current.ClientID, "client_id", clientID)
	case current.IdentityType != types.IdentityNone && current.IdentityType != identity:
		log.Warn("Identity type changed, clearing the existing auth tokens", "previous", current.IdentityType, "identity_type", identity)
	default:
		return nil
	}
	return m.Logout()
}

func (m *Manager) newSPNCredential(tenantID, clientID string, secret SPNSecret) (azcore.TokenCredential, error) {
	var (
		cred azcore.TokenCredential
		err  error
	)
	switch {
	case secret.CertPath != "":
		material, loadErr := certs.Load(secret.CertPath, secret.Password)
		if loadErr != nil {
			return nil, loadErr
		}
		cred, err = m.factory.Certificate(tenantID, clientID, material)
	case secret.Password != "":
		cred, err = m.factory.ClientSecret(tenantID, clientID, secret.Password)
	default:
		cred, err = m.factory.ClientAssertion(tenantID, clientID, secret.ClientAssertion)
	}
	if err != nil {
		return nil, credentialError(err)
	}
	return cred, nil
}
