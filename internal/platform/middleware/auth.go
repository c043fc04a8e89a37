package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"zaakregister/internal/authz"
)

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*authz.Claims, error)
}

// RequireAuth authenticates the calling client and stores its identity and
// scope set in the request context. Scope decisions happen in the domain
// services; this middleware only establishes who is calling.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized request",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w)
				return
			}

			ctx := authz.WithClientID(r.Context(), claims.ClientID)
			ctx = authz.WithScopes(ctx, authz.NewScopes(claims.Scopes...))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"invalidParams":[{"code":"not-authenticated","reason":"invalid or missing bearer token"}]}`))
}
