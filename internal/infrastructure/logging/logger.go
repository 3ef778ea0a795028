package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/angel-assistant/angel-core/internal/infrastructure/config"
)

// Logger wraps slog.Logger for structured logging across Angel Core.
//
// Every subsystem logs through a Logger derived from the root one via
// Component, so records can be filtered per subsystem (decision, mqtt,
// api, ...) downstream.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Logger struct {
	*slog.Logger
}

// New creates the root Logger from configuration.
//
// Format "text" is meant for development consoles; anything else emits
// JSON for log shippers. Output accepts "stdout", "stderr" and "discard"
// (the latter mainly for tests). Every record carries the service name
// and build version as default fields.
//
// Parameters:
//   - cfg: Logging configuration from config.yaml
//   - version: Application version for the default field
//
// Returns:
//   - *Logger: Configured logger ready for use
func New(cfg config.LoggingConfig, version string) *Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		output = os.Stderr
	case "discard":
		output = io.Discard
	default:
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "angelcore"),
		slog.String("version", version),
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// parseLevel converts a string log level to slog.Level.
//
// Supported levels: debug, info, warn, error
// Unknown names fall back to info rather than failing startup.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a new Logger with additional default attributes.
//
// Parameters:
//   - args: Key-value pairs to add as default attributes
//
// Returns:
//   - *Logger: New logger with added attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// Component returns a derived Logger tagged with the subsystem name.
//
// Example:
//
//	engineLog := logger.Component("decision")
//	engineLog.Info("batch created") // Includes component=decision
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// Default creates a default logger for use before configuration is loaded.
//
// This logger outputs to stdout in JSON format at info level.
// It should only be used during early startup before config is available.
//
// Returns:
//   - *Logger: Default logger
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}

// Discard returns a Logger that drops every record. Test helpers use it
// where a nil logger is not accepted.
func Discard() *Logger {
	return New(config.LoggingConfig{
		Level:  "error",
		Format: "json",
		Output: "discard",
	}, "test")
}
