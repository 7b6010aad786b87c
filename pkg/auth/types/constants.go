package types

// Entra ID endpoints and the fab public client.
const (
	AuthorityHost      = "https://login.microsoftonline.com/"
	DefaultTenant      = "organizations"
	DefaultAuthority   = AuthorityHost + DefaultTenant
	PublicClientID     = "5814bfb4-2705-4994-b8d6-39aabeb5eaeb"
	JWKSPath           = "/discovery/v2.0/keys"
	DefaultRedirectURL = "http://localhost"
)

// Auth file keys.
const (
	KeyIdentityType = "identity_type"
	KeyTenantID     = "fab_tenant_id"
	KeySPNClientID  = "fab_spn_client_id"

	// Legacy keys migrated away on load.
	LegacyKeyAuthMode  = "fab_auth_mode"
	LegacyKeyAuthority = "fab_authority"
)

// Environment variables read at startup.
const (
	EnvTenantID          = "FAB_TENANT_ID"
	EnvSPNClientID       = "FAB_SPN_CLIENT_ID"
	EnvSPNClientSecret   = "FAB_SPN_CLIENT_SECRET"
	EnvSPNCertPath       = "FAB_SPN_CERT_PATH"
	EnvSPNCertPassword   = "FAB_SPN_CERT_PASSWORD"
	EnvSPNFederatedToken = "FAB_SPN_FEDERATED_TOKEN"
	EnvManagedIdentity   = "FAB_MANAGED_IDENTITY"
	EnvToken             = "FAB_TOKEN"
	EnvTokenOneLake      = "FAB_TOKEN_ONELAKE"
	EnvTokenAzure        = "FAB_TOKEN_AZURE"
)

// Claims read from access tokens.
const (
	ClaimTenantID = "tid"
	ClaimUPN      = "upn"
	ClaimObjectID = "oid"
	ClaimAppID    = "appid"
)

// Authority returns the authority URL for tenantID, or the multi-tenant
// organizations authority when tenantID is empty.
func Authority(tenantID string) string {
	if tenantID == "" {
		return DefaultAuthority
	}
	return AuthorityHost + tenantID
}
