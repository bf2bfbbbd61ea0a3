// Package errors provides typed errors with exit codes for forage-remote.
//
// # Error Types
//
// ForageError is the base error type that wraps an error with an exit code:
//
//	type ForageError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess          = 0 // Success
//	ExitGeneralError     = 1 // General/unknown errors
//	ExitInvalidConfig    = 2 // Session config could not be built
//	ExitMalformedAddress = 3 // Value is not in host:port form
//	ExitInvalidPort      = 4 // Port component is not a valid number
//	ExitStoreError       = 5 // Configuration store could not be read or written
//	ExitSSHError         = 6 // SSH operation failed
//	ExitProbeFailed      = 7 // Network probe found nothing usable
//
// # Matching
//
// The sentinels ErrInvalidConfiguration, ErrMalformedAddress and
// ErrInvalidPort match any ForageError with the same code:
//
//	if errors.Is(err, errors.ErrInvalidPort) {
//	    ...
//	}
//
// Hostname resolution failures and port probe failures are not errors; the
// network and port packages report them through fallback and sentinel values.
package errors
