// Package requestctx carries the authenticated identity for one request.
package requestctx

import (
	"context"

	"github.com/sovna/taskhub/internal/storage"
)

// userContextKey is the context key for the authenticated user record.
type userContextKey struct{}

// WithUser stores the authenticated user in context for the rest of the request.
func WithUser(ctx context.Context, u storage.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext returns the authenticated user stored in context.
func UserFromContext(ctx context.Context) (storage.User, bool) {
	if ctx == nil {
		return storage.User{}, false
	}
	value, ok := ctx.Value(userContextKey{}).(storage.User)
	return value, ok
}
