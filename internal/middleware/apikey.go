package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader is the shared-secret header checked on keyed routes.
const APIKeyHeader = "x-api-key"

// APIKey returns middleware that rejects requests whose x-api-key header
// does not match the configured shared secret.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error": "invalid API key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
