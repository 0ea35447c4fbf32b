package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const claimsKey contextKey = "claims"

// Middleware validates the Bearer token on mutating routes and injects the
// claims into the request context for the handlers downstream. Read-only
// snapshot and stream routes stay public and are not wrapped.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "authorization token is missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), claimsKey, claims),
			))
		})
	}
}

// ClaimsFromContext returns the validated claims, or nil outside the
// middleware (which the service treats as unauthorized).
func ClaimsFromContext(ctx context.Context) *CustomClaims {
	claims, _ := ctx.Value(claimsKey).(*CustomClaims)
	return claims
}
