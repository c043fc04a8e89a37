// Package authz extracts client scopes from JWT credentials and carries them
// through the request context. The domain rules never parse tokens; they
// receive the scope set as plain data.
package authz

import "context"

// Scope names are part of the API contract with consuming applications.
type Scope string

const (
	ScopeCatalogiLezen               Scope = "catalogi.lezen"
	ScopeCatalogiSchrijven           Scope = "catalogi.schrijven"
	ScopeCatalogiVerwijderen         Scope = "catalogi.verwijderen"
	ScopeCatalogiGeforceerdBijwerken Scope = "catalogi.geforceerd-bijwerken"

	ScopeZakenLezen              Scope = "zaken.lezen"
	ScopeZakenAanmaken           Scope = "zaken.aanmaken"
	ScopeZakenBijwerken          Scope = "zaken.bijwerken"
	ScopeStatussenToevoegen      Scope = "zaken.statussen.toevoegen"
	ScopeZakenHeropenen          Scope = "zaken.heropenen"
	ScopeZakenVerwijderen        Scope = "zaken.verwijderen"
)

// Scopes is the set of scopes granted to the calling client.
type Scopes map[Scope]struct{}

// NewScopes builds a scope set from raw claim values.
func NewScopes(values ...string) Scopes {
	s := make(Scopes, len(values))
	for _, v := range values {
		s[Scope(v)] = struct{}{}
	}
	return s
}

// Has reports whether the scope was granted.
func (s Scopes) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

// HasAny reports whether at least one of the scopes was granted.
func (s Scopes) HasAny(scopes ...Scope) bool {
	for _, scope := range scopes {
		if s.Has(scope) {
			return true
		}
	}
	return false
}

type ctxKeyScopes struct{}

type ctxKeyClientID struct{}

// WithScopes binds the granted scopes to the context.
func WithScopes(ctx context.Context, scopes Scopes) context.Context {
	return context.WithValue(ctx, ctxKeyScopes{}, scopes)
}

// FromContext returns the granted scopes, or an empty set.
func FromContext(ctx context.Context) Scopes {
	scopes, ok := ctx.Value(ctxKeyScopes{}).(Scopes)
	if !ok {
		return Scopes{}
	}
	return scopes
}

// WithClientID binds the authenticated client identifier to the context.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ctxKeyClientID{}, clientID)
}

// ClientID returns the authenticated client identifier, or "".
func ClientID(ctx context.Context) string {
	clientID, ok := ctx.Value(ctxKeyClientID{}).(string)
	if !ok {
		return ""
	}
	return clientID
}
