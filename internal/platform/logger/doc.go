// Package logger sets up the process-wide JSON slog logger and carries a
// request-scoped logger and trace ID through context.Context.
package logger
