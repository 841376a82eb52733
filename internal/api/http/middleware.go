package http

import (
	"context"
	"net/http"
	"strings"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware authenticates a Bearer token and stores the caller's claims
// in the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, domain.Errf(domain.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, domain.Errf(domain.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the authenticated caller's claims, or nil on an
// unauthenticated request.
func ClaimsFrom(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsKey).(*security.UserClaims)
	return claims
}
