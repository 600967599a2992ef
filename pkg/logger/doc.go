// Package logger builds configured slog.Logger instances for the service.
//
// Output format and level come from the environment (LOG_FORMAT, LOG_LEVEL)
// or from explicit options. JSON output is the default so logs feed directly
// into aggregation systems; text output is for local development.
//
// The attr helpers (Error, Component, RequestID, UserID) keep attribute keys
// consistent across packages.
package logger
