package webui

import (
	"context"
	"net/http"
	"strings"
)

type claimsContextKey struct{}

// GetClaimsFromContext returns the claims stashed by JWTAuth, or nil if
// the request reached this point unauthenticated.
func GetClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}

// JWTAuth rejects requests without a valid bearer access token, and
// stashes its claims in the request context for downstream handlers.
func JWTAuth(svc *JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed Authorization header")
				return
			}
			claims, err := svc.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose JWTAuth-validated claims are not an
// admin. Must run after JWTAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil || !claims.IsAdmin {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "administrator privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
