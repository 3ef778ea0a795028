package scenario

import "errors"

// Common scenario errors.
var (
	// ErrUnknownScenario indicates the requested scenario name is not
	// defined.
	ErrUnknownScenario = errors.New("scenario: unknown scenario")

	// ErrUnsupportedAction indicates the action is not valid for the
	// targeted device type.
	ErrUnsupportedAction = errors.New("scenario: unsupported action")

	// ErrMissingParam indicates a required action parameter is absent or
	// has the wrong type.
	ErrMissingParam = errors.New("scenario: missing required parameter")
)
