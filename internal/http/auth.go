package http

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/libry/internal/auth"
)

// RequireToken rejects requests without a valid "Authorization: Bearer" token.
func RequireToken(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="libry"`)
				http.Error(w, "missing bearer token", http.StatusUnauthorized)

				return
			}

			if _, err := tokens.Parse(strings.TrimSpace(raw)); err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="libry", error="invalid_token"`)
				http.Error(w, "invalid token", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
