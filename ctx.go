package realworld

import (
	"context"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithUserContext sets the resolved Identity in the given context
func WithUserContext(r context.Context, identity Identity) context.Context {
	return context.WithValue(r, userCtxKey, identity)
}

// UserFromContext finds the identity from the context.
func UserFromContext(ctx context.Context) (Identity, bool) {
	raw, ok := ctx.Value(userCtxKey).(Identity)
	return raw, ok
}
