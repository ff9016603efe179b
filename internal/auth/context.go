package auth

import "context"

type contextKey struct{ name string }

var identityKey = contextKey{"auth-identity"}

// WithIdentity returns a context carrying the authenticated identity. Callers
// attach it after ValidateAccess so downstream handlers read one value instead
// of re-validating the token.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by WithIdentity, or nil when
// the context carries none.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}
