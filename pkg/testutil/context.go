package testutil

import (
	"net/http"

	"zaakregister/internal/authz"
)

// WithScopes attaches the given scopes to the request context.
// This simulates what the auth middleware does for authenticated requests.
func WithScopes(req *http.Request, scopes ...string) *http.Request {
	ctx := authz.WithScopes(req.Context(), authz.NewScopes(scopes...))
	return req.WithContext(ctx)
}

// WithClient attaches a client ID and scopes to the request context,
// the typical state of a fully authenticated request.
func WithClient(req *http.Request, clientID string, scopes ...string) *http.Request {
	ctx := authz.WithClientID(req.Context(), clientID)
	ctx = authz.WithScopes(ctx, authz.NewScopes(scopes...))
	return req.WithContext(ctx)
}
