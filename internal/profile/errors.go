package profile

import "errors"

// Domain errors for the profile package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, profile.ErrProfileNotFound) {
//	    // handle not found case
//	}
var (
	// ErrProfileNotFound is returned when a user ID has no stored profile
	// and the store does not synthesise defaults.
	ErrProfileNotFound = errors.New("profile: not found")

	// ErrInvalidUserID is returned when a user ID is empty.
	ErrInvalidUserID = errors.New("profile: invalid user id")
)
