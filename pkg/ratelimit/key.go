package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/medscanhq/medscan/pkg/clientip"
)

// Storage backends like Redis suffer with unbounded key lengths; anything
// longer is hashed down.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from an HTTP request. An empty key
// skips limiting for that request.
type KeyFunc func(*http.Request) string

// ByClientIP keys the limit on the originating client IP.
func ByClientIP(r *http.Request) string {
	return clientip.GetIP(r)
}

// Composite joins multiple key functions into a single key. Long keys are
// hashed to 32 hex chars.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}
		return combined
	}
}
