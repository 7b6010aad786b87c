package errors

// User-facing messages for the auth subsystem.
const (
	MsgManagedIdentityIncompatibleVars = "FAB_MANAGED_IDENTITY cannot be combined with FAB_SPN_CLIENT_SECRET, FAB_SPN_CERT_PATH or FAB_SPN_FEDERATED_TOKEN"
	MsgTenantIDEnvVarRequired          = "FAB_TENANT_ID must be set when FAB_SPN_CLIENT_ID is set"
	MsgSPNMissingCredential            = "Service principal authentication requires exactly one of a client secret, a certificate or a federated token"
	MsgSPNReauthRequired               = "Service principal credentials are not available in this session. Run 'fab auth login' again"
	MsgNotLoggedIn                     = "Not logged in. Run 'fab auth login' first"
	MsgNoCachedToken                   = "No cached token available. Please run 'fab auth login' first."
	MsgFabricAndOneLakeTokensRequired  = "Both FAB_TOKEN and FAB_TOKEN_ONELAKE environment variables must be set"
	MsgAzureTokenRequired              = "FAB_TOKEN_AZURE environment variable must be set for Azure operations"
	MsgManagedIdentityConnectionFailed = "Failed to connect to the managed identity endpoint. Make sure the command runs on an Azure resource with a managed identity assigned"
	MsgManagedIdentityTokenFailed      = "Failed to acquire a token with managed identity. Check the identity has access to the requested resource"
	MsgJWTDecodeFailed                 = "Failed to decode or validate the access token"
	MsgPublicKeyNotFound               = "Signing key for the access token was not found"
	MsgInvalidJWTToken                 = "Invalid JWT token"
	MsgEncryptedCacheError             = "Token cache encryption is not available on this system. Run 'fab config set encryption_fallback_enabled true' to allow an unencrypted cache"
	MsgFederatedTokenEmpty             = "Federated token must not be empty"
)

// InvalidGUID formats the message for a malformed GUID parameter.
func InvalidGUID(parameter string) string {
	return "Invalid value for '" + parameter + "'. A valid GUID is expected"
}

// InvalidCertPath formats the message for a missing or non-regular certificate file.
func InvalidCertPath(parameter string) string {
	return "Certificate path in '" + parameter + "' does not exist or is not a file"
}

// InvalidCertFormat formats the message for an unsupported certificate extension.
func InvalidCertFormat(parameter string) string {
	return "Certificate in '" + parameter + "' must be a .pem, .pfx or .p12 file"
}

// CertReadFailed formats the message for an unreadable certificate.
func CertReadFailed(reason string) string {
	return "Failed to read certificate: " + reason
}

// InvalidIdentityType formats the message for an unknown access mode.
func InvalidIdentityType(mode string, allowed []string) string {
	msg := "Invalid identity type '" + mode + "'. Allowed values:"
	for i, a := range allowed {
		if i > 0 {
			msg += ","
		}
		msg += " " + a
	}
	return msg
}

// InvalidScope formats the message for an unsupported token scope.
func InvalidScope(scope string) string {
	return "Invalid scope '" + scope + "'"
}

// AccessTokenError formats the message for a failed token acquisition.
func AccessTokenError(reason string) string {
	return "Failed to get access token: " + reason
}
