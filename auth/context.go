package auth

// This file holds the context plumbing for the resolved identity. The
// identity middleware stores the *User here; handlers and guards read it
// back. An absent value means the caller is anonymous.

import "context"

// contextKey is a private type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the resolved user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the signed-in user stored in the context, or
// (nil, false) for an anonymous caller.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
