package contentgen

import "context"

// Provider generates text from a system prompt and a user prompt. The
// OpenAI-backed implementation is the default; tests substitute a mock.
type Provider interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// disabledProvider stands in when no provider is configured. Every call
// fails with ErrProviderDisabled so callers fall back to canned phrases.
type disabledProvider struct{}

func (disabledProvider) Generate(context.Context, string, string) (string, error) {
	return "", ErrProviderDisabled
}

// Logger defines the logging interface this package needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
