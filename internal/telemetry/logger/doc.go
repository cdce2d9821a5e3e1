// Package logger provides structured logging for tankmate.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and the global level
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Bearer token and JWT redaction
//
// The CLI logs to stderr so that stdout stays reserved for command output.
package logger
