// Package logger sets up structured logging on log/slog with JSON output
// and a configurable level, and threads a request-scoped logger through
// context so handlers and services log with correlation IDs attached.
package logger
