package contentgen

import "errors"

// Common content generation errors.
var (
	// ErrConversationNotFound indicates the conversation ID is unknown or
	// the conversation has already concluded.
	ErrConversationNotFound = errors.New("contentgen: conversation not found")

	// ErrEmptyCompletion indicates the provider returned no choices.
	ErrEmptyCompletion = errors.New("contentgen: empty completion")

	// ErrProviderDisabled indicates no content provider is configured.
	ErrProviderDisabled = errors.New("contentgen: provider disabled")
)
