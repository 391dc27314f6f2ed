package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Recover converts a handler panic into a generic 500 response.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panicked",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error":   "INTERNAL_ERROR",
						"message": "an unexpected error occurred",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
