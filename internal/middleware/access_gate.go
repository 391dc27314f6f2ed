package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// SecretHeader carries the shared secret on protected routes.
const SecretHeader = "x-order-secret"

// AccessGate requires the shared-secret header on every request it wraps.
// With an empty secret the gate is a no-op, leaving the routes open; main
// warns operators about that at startup.
func AccessGate(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(SecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				logger.Warn("rejected request with missing or invalid secret",
					zap.String("path", r.URL.Path),
					zap.String("remoteAddr", r.RemoteAddr),
				)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": "missing or invalid credential",
	})
}
