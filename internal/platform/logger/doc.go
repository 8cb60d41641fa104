// Package logger builds the JSON slog logger and carries request-scoped
// loggers through context.Context, so handlers and stores log with the
// trace id of the request they serve.
package logger
