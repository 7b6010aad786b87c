package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// FabricError is the user-facing error type. Message is what gets printed,
// StatusCode is the machine-readable tag shown in JSON output.
type FabricError struct {
	Message    string
	StatusCode string
	cause      error
}

// New creates a FabricError tagged with status that wraps sentinel, so
// errors.Is(err, sentinel) keeps working for callers.
func New(sentinel error, status string, msg string) error {
	return &FabricError{Message: msg, StatusCode: status, cause: sentinel}
}

// Newf is New with a formatted message.
func Newf(sentinel error, status string, format string, args ...interface{}) error {
	return New(sentinel, status, fmt.Sprintf(format, args...))
}

func (e *FabricError) Error() string {
	return e.Message
}

func (e *FabricError) Unwrap() error {
	return e.cause
}

// StatusCode returns the status code of the first FabricError in the chain,
// or StatusUnexpectedError.
func StatusCode(err error) string {
	if err == nil {
		return ""
	}
	var fe *FabricError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return StatusUnexpectedError
}

// Message returns the printable message of the first FabricError in the
// chain, falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *FabricError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
