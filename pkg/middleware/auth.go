package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hpfoods/hpfoods-api/pkg/auth"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/response"
)

type claimsKey struct{}

// Authenticate verifies the bearer token with secret and stores its claims
// in the request context. Browsers cannot set headers on WebSocket
// handshakes, so an access_token query parameter is accepted as well.
func Authenticate(secret string) func(http.Handler) http.Handler {
	issuer := auth.NewIssuer(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := issuer.Validate(token)
			if err != nil {
				logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("access_token")
}

// ClaimsFromCtx returns the verified token claims for the request.
func ClaimsFromCtx(r *http.Request) (*auth.Claims, bool) {
	c, ok := r.Context().Value(claimsKey{}).(*auth.Claims)
	return c, ok && c != nil
}

// UserIDFromCtx returns the authenticated user's id.
func UserIDFromCtx(r *http.Request) (string, bool) {
	c, ok := ClaimsFromCtx(r)
	if !ok || c.UserID == "" {
		return "", false
	}
	return c.UserID, true
}

// RoleFromCtx returns the role claim of the authenticated user.
func RoleFromCtx(r *http.Request) (string, bool) {
	c, ok := ClaimsFromCtx(r)
	if !ok {
		return "", false
	}
	return c.Role, true
}
