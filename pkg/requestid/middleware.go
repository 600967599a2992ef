// Package requestid assigns a correlation ID to every request and makes it
// available through the context and the X-Request-ID response header.
package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the request/response header carrying the correlation ID.
const Header = "X-Request-ID"

const maxIDLength = 128

// Incoming IDs are untrusted input; anything outside this shape is replaced.
var validIDRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Middleware reuses a valid incoming X-Request-ID or generates a new one,
// echoes it on the response, and injects it into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !isValidRequestID(requestID) {
			requestID = uuid.New().String()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
