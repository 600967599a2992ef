// Package httperr maps domain errors to HTTP responses at the handler
// boundary.
//
// Handlers return plain errors; the boundary classifies them into an
// Error{Code, Message} pair, logs with request context, and writes a JSON
// {"message": ...} body. Unclassified errors become 500 with a generic
// message so internal details never leak to clients.
package httperr
