package types

import (
	errUtils "github.com/fabric-cli/fab/errors"
)

// IdentityType is the kind of principal fab authenticates as. The zero value
// means no identity is configured.
type IdentityType string

const (
	IdentityNone             IdentityType = ""
	IdentityUser             IdentityType = "user"
	IdentityServicePrincipal IdentityType = "service_principal"
	IdentityManagedIdentity  IdentityType = "managed_identity"
)

// IdentityTypes lists every identity type a user can select.
func IdentityTypes() []IdentityType {
	return []IdentityType{IdentityUser, IdentityServicePrincipal, IdentityManagedIdentity}
}

// String implements fmt.Stringer.
func (t IdentityType) String() string {
	return string(t)
}

// Validate returns ErrInvalidIdentityType unless t is a selectable identity type.
func (t IdentityType) Validate() error {
	switch t {
	case IdentityUser, IdentityServicePrincipal, IdentityManagedIdentity:
		return nil
	case IdentityNone:
		fallthrough
	default:
		allowed := make([]string, 0, 3)
		for _, it := range IdentityTypes() {
			allowed = append(allowed, it.String())
		}
		return errUtils.New(errUtils.ErrInvalidIdentityType, errUtils.StatusInvalidAccessMode,
			errUtils.InvalidIdentityType(string(t), allowed))
	}
}

// ParseIdentityType converts s and validates it.
func ParseIdentityType(s string) (IdentityType, error) {
	t := IdentityType(s)
	if err := t.Validate(); err != nil {
		return IdentityNone, err
	}
	return t, nil
}
