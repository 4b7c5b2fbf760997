package http

import (
	"net/http"

	"github.com/aeiou-exam/backend/auth"
	"github.com/aeiou-exam/backend/httpjson"
)

// requireRoles rejects requests whose token is missing (401) or whose
// role is not in the allowed set (403).
func requireRoles(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromContext(r.Context())
			if claims == nil {
				httpjson.WriteErrorJson(w,
					"authentication required",
					http.StatusUnauthorized,
					"unauthorized")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpjson.WriteErrorJson(w,
				"insufficient permissions",
				http.StatusForbidden,
				"forbidden")
		}
		return http.HandlerFunc(hfn)
	}
}
