package auth

import (
	"github.com/google/uuid"

	errUtils "github.com/fabric-cli/fab/errors"
)

// ValidateGUID returns ErrInvalidGUID naming parameter unless value parses
// as a GUID.
func ValidateGUID(value, parameter string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errUtils.New(errUtils.ErrInvalidGUID, errUtils.StatusInvalidGUID, errUtils.InvalidGUID(parameter))
	}
	return nil
}
