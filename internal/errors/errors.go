package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the user store, token codec and auth layers.
// Callers match them with Is; the HTTP layer maps each kind to a status.
var (
	// Authorization header errors
	ErrMalformedHeader = errors.New("invalid authorization header provided")
	ErrMissingHeader   = fmt.Errorf("%w: not authenticated", ErrMalformedHeader)

	// Authentication / authorization errors
	ErrUnauthenticated       = errors.New("could not validate credentials")
	ErrInsufficientPrivilege = errors.New("insufficient privilege")
	ErrUserDisabled          = errors.New("user is disabled")
	ErrPasswordMismatch      = errors.New("passwords do not match")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Store errors
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")

	// General errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidInput  = errors.New("invalid input")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Message returns the text attached where kind entered err's chain, without
// the context added by callers further up. It falls back to kind's own text.
func Message(err, kind error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if errors.Unwrap(e) == kind {
			return strings.TrimSuffix(e.Error(), ": "+kind.Error())
		}
	}
	return kind.Error()
}
