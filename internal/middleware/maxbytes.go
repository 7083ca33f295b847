package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes is the default maximum JSON request body size (10 MiB).
const DefaultMaxBodyBytes = 10 << 20

// MaxBytes limits the request body size. Reads past maxBytes fail, which
// handlers report as a malformed body.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
