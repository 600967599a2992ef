// Package httpserver wraps http.Server with graceful shutdown, signal
// handling, and functional options.
//
// Run blocks until the context is canceled, SIGINT/SIGTERM is received, or
// the listener fails; in the first two cases the server drains in-flight
// requests within the shutdown timeout before returning.
package httpserver
