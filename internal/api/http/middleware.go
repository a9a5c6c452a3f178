package http

import (
	"context"
	"net/http"
	"strings"

	"rentdesk-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "staff_claims"

// AuthMiddleware validates the Bearer token and stashes the staff claims on
// the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Error: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated staff claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.StaffClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.StaffClaims)
	return claims, ok
}
