package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-remote
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInvalidConfig    = 2
	ExitMalformedAddress = 3
	ExitInvalidPort      = 4
	ExitStoreError       = 5
	ExitSSHError         = 6
	ExitProbeFailed      = 7
)

// Sentinels for errors.Is checks. Any ForageError with the same code matches.
var (
	ErrInvalidConfiguration = New(ExitInvalidConfig, "invalid configuration")
	ErrMalformedAddress     = New(ExitMalformedAddress, "malformed address")
	ErrInvalidPort          = New(ExitInvalidPort, "invalid port")
)

// ForageError is the base error type for forage-remote
type ForageError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ForageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ForageError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ForageError carrying the same exit code.
func (e *ForageError) Is(target error) bool {
	t, ok := target.(*ForageError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ExitCode returns the exit code for this error
func (e *ForageError) ExitCode() int {
	return e.Code
}

// New creates a new ForageError
func New(code int, message string) *ForageError {
	return &ForageError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ForageError
func Wrap(code int, message string, cause error) *ForageError {
	return &ForageError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidConfiguration returns an error for a session config that cannot be built
func InvalidConfiguration(message string) *ForageError {
	return New(ExitInvalidConfig, message)
}

// MalformedAddress returns an error for a value that is not in host:port form
func MalformedAddress(value string) *ForageError {
	return New(ExitMalformedAddress,
		fmt.Sprintf("failed to parse address from %s. Expected to be in the format of host:port", value))
}

// InvalidPort returns an error for a port component that is not a valid port number
func InvalidPort(value string, cause error) *ForageError {
	return Wrap(ExitInvalidPort, fmt.Sprintf("invalid port in address %s", value), cause)
}

// StoreError returns an error for configuration store operations
func StoreError(message string, cause error) *ForageError {
	return Wrap(ExitStoreError, message, cause)
}

// SSHError returns an error for SSH operations
func SSHError(message string, cause error) *ForageError {
	return Wrap(ExitSSHError, message, cause)
}

// ProbeFailed returns an error when a best-effort network probe produced nothing usable
func ProbeFailed(message string) *ForageError {
	return New(ExitProbeFailed, message)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ForageError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var forageErr *ForageError
	if errors.As(err, &forageErr) {
		return forageErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
