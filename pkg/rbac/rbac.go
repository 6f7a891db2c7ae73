// Package rbac guards routes by the role claim of the session token.
package rbac

import (
	"net/http"
	"strings"

	"github.com/hpfoods/hpfoods-api/pkg/middleware"
	"github.com/hpfoods/hpfoods-api/pkg/response"
)

// HasRole allows the request only when the token's role is one of roles
// (case-insensitive). Authentication must already have run; a request
// without claims gets 401, a request with the wrong role gets 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}
			if !allowed[strings.ToLower(role)] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
