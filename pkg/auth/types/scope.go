package types

import (
	errUtils "github.com/fabric-cli/fab/errors"
)

// Scope is an OAuth2 scope fab requests tokens for.
type Scope string

const (
	ScopeFabric  Scope = "https://api.fabric.microsoft.com/.default"
	ScopeOneLake Scope = "https://storage.azure.com/.default"
	ScopeAzure   Scope = "https://management.azure.com/.default"
)

// Audience returns the aud claim expected in tokens minted for s.
func (s Scope) Audience() (string, error) {
	switch s {
	case ScopeFabric:
		return "https://api.fabric.microsoft.com", nil
	case ScopeOneLake:
		return "https://storage.azure.com", nil
	case ScopeAzure:
		return "https://management.azure.com", nil
	default:
		return "", errUtils.New(errUtils.ErrInvalidScope, errUtils.StatusAuthenticationFailed, errUtils.InvalidScope(string(s)))
	}
}

// TokenEnvVar returns the environment variable that overrides tokens for s.
func (s Scope) TokenEnvVar() (string, error) {
	switch s {
	case ScopeFabric:
		return EnvToken, nil
	case ScopeOneLake:
		return EnvTokenOneLake, nil
	case ScopeAzure:
		return EnvTokenAzure, nil
	default:
		return "", errUtils.New(errUtils.ErrInvalidScope, errUtils.StatusAuthenticationFailed, errUtils.InvalidScope(string(s)))
	}
}
