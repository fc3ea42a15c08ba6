package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/ecobazaar/pkg/auth"
	"github.com/shashiranjanraj/ecobazaar/pkg/response"
)

// claimsKey is the unexported context key for the authenticated JWT claims.
type claimsKey struct{}

// AuthMiddleware validates the Bearer token and stores its claims in the
// request context. Downstream handlers read the identity via UserIDFromCtx,
// UsernameFromCtx and RoleFromCtx.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the JWT claims stored by AuthMiddleware.
func ClaimsFromCtx(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user's ID.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	if claims, ok := ClaimsFromCtx(r); ok {
		return claims.UserID, true
	}
	return 0, false
}

// UsernameFromCtx returns the authenticated user's username.
func UsernameFromCtx(r *http.Request) (string, bool) {
	if claims, ok := ClaimsFromCtx(r); ok {
		return claims.Username, true
	}
	return "", false
}

// RoleFromCtx returns the authenticated user's role.
func RoleFromCtx(r *http.Request) (string, bool) {
	if claims, ok := ClaimsFromCtx(r); ok {
		return claims.Role, true
	}
	return "", false
}
