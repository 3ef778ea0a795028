package decision

import "errors"

// Common decision engine errors.
var (
	// ErrInvalidObservation indicates the observation is missing the user ID
	// needed to load a profile. Other malformed fields degrade instead.
	ErrInvalidObservation = errors.New("decision: invalid observation")

	// ErrBatchNotFound indicates the recommendation batch ID is unknown or
	// has been evicted from the bounded history.
	ErrBatchNotFound = errors.New("decision: batch not found")

	// ErrProfileUnavailable indicates the profile store failed to load the
	// user's profile.
	ErrProfileUnavailable = errors.New("decision: profile unavailable")
)
