package auth

import (
	"context"

	"github.com/classtrack/classtrack/store"
)

type userContextKey struct{}

// SetUserInContext attaches the authenticated user to the context.
func SetUserInContext(ctx context.Context, user *store.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, nil when unauthenticated.
func UserFromContext(ctx context.Context) *store.User {
	user, _ := ctx.Value(userContextKey{}).(*store.User)
	return user
}
