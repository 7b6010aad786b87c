package errors

import (
	"github.com/cockroachdb/errors"
)

// Status codes carried by FabricError.
const (
	StatusInvalidGUID          = "InvalidGuid"
	StatusInvalidCertPath      = "InvalidCertificatePath"
	StatusInvalidCertificate   = "InvalidCertificate"
	StatusAuthenticationFailed = "AuthenticationFailed"
	StatusInvalidAccessMode    = "InvalidAccessMode"
	StatusEncryptionFailed     = "EncryptionFailed"
	StatusInvalidConfigKey     = "InvalidConfigKey"
	StatusInvalidConfigValue   = "InvalidConfigValue"
	StatusInvalidPath          = "InvalidPath"
	StatusUnknownCommand       = "UnknownCommand"
	StatusInvalidInput         = "InvalidInput"
	StatusOperationCancelled   = "OperationCancelled"
	StatusUnexpectedError      = "UnexpectedError"
)

// Validation.
var (
	ErrInvalidGUID       = errors.New("invalid GUID")
	ErrInvalidCertPath   = errors.New("invalid certificate path")
	ErrInvalidCertFormat = errors.New("invalid certificate format")
	ErrCertRead          = errors.New("failed to read certificate")
	ErrCertIncomplete    = errors.New("certificate archive needs a certificate and a private key")
	ErrCertMultipleKeys  = errors.New("certificate archive contains more than one private key")
)

// Environment.
var (
	ErrManagedIdentityIncompatibleVars = errors.New("managed identity is incompatible with service principal credentials")
	ErrTenantIDRequired                = errors.New("tenant id is required")
	ErrSPNMissingCredential            = errors.New("service principal credential is missing")
)

// Authentication.
var (
	ErrSPNReauthRequired              = errors.New("service principal re-authentication required")
	ErrNotLoggedIn                    = errors.New("not logged in")
	ErrLoginRequired                  = errors.New("login required")
	ErrInvalidIdentityType            = errors.New("invalid identity type")
	ErrInvalidScope                   = errors.New("invalid scope")
	ErrFabricAndOneLakeTokensRequired = errors.New("both FAB_TOKEN and FAB_TOKEN_ONELAKE are required")
	ErrAzureTokenRequired             = errors.New("FAB_TOKEN_AZURE is required")
	ErrAccessToken                    = errors.New("failed to acquire access token")
	ErrManagedIdentityConnection      = errors.New("managed identity endpoint unreachable")
	ErrManagedIdentityToken           = errors.New("managed identity token acquisition failed")
	ErrAuthenticationCancelled        = errors.New("authentication cancelled")
)

// Tokens.
var (
	ErrJWTDecodeFailed   = errors.New("failed to decode JWT token")
	ErrPublicKeyNotFound = errors.New("public key not found")
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
)

// Storage.
var (
	ErrEncryptedCache   = errors.New("encrypted token cache unavailable")
	ErrAuthFileWrite    = errors.New("failed to write auth file")
	ErrAuthFileRead     = errors.New("failed to read auth file")
	ErrSettingsWrite    = errors.New("failed to write settings")
	ErrSettingsRead     = errors.New("failed to read settings")
	ErrFileLocked       = errors.New("file is locked by another process")
	ErrConfigDir        = errors.New("failed to create config directory")
	ErrInvalidConfigKey = errors.New("invalid config key")
	ErrInvalidConfigVal = errors.New("invalid config value")
)

// Commands.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPath        = errors.New("invalid path")
	ErrShellPipe          = errors.New("error running pipe command")
	ErrOperationCancelled = errors.New("operation cancelled")
)
