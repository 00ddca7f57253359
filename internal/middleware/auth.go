package middleware

import (
	"net/http"
	"strings"

	"lorekeeper/internal/auth"
	"lorekeeper/internal/httputil"
)

// AuthMiddleware resolves the bearer token into a caller. Requests without an
// Authorization header pass through anonymously; the services reject them
// where a caller is required. A header that does not verify is a 401.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithUserID(r, claims.GetUserID())
			r = httputil.WithUserName(r, claims.DisplayName())
			next.ServeHTTP(w, r)
		})
	}
}
