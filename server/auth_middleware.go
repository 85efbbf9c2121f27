package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-client/session/credentials"
	"github.com/jrsteele09/go-auth-client/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified token claims
	ContextKeyClaims ContextKey = "claims"
)

// ClaimsFromContext returns the claims injected by RequireAuth, or nil.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

// RequireAuth validates the access token from either the token cookie or a
// Bearer authorization header, mirroring how the original frontend middleware
// looked the token up.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken := tokenFromRequest(r)
		if rawToken == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Missing token",
			})
			return
		}

		claims, err := s.tokens.Verify(rawToken)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(credentials.TokenCookieName); err == nil && cookie.Value != "" {
		// Legacy cookie values may carry trailing attributes after a space.
		return strings.SplitN(cookie.Value, " ", 2)[0]
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
