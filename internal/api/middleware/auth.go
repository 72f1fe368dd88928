package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/realtydesk/transaction-manager-backend/internal/api/response"
	"github.com/realtydesk/transaction-manager-backend/internal/auth"
)

type contextKey string

const agentIDKey contextKey = "agentID"

// BearerAuth returns a middleware that requires a valid bearer token on every
// request and injects the caller's agent id into the request context.
func BearerAuth(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "missing bearer token", "")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired token", "")
				return
			}

			ctx := context.WithValue(r.Context(), agentIDKey, claims.AgentID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AgentID returns the authenticated agent's id from the request context, or
// an empty string outside an authenticated route.
func AgentID(ctx context.Context) string {
	id, _ := ctx.Value(agentIDKey).(string)
	return id
}
