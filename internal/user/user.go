package users

import "context"

type ContextKey string

const UserKey ContextKey = "user"

// User is the invoker of a command as reported by the chat gateway.
type User struct {
	ID      string
	Name    string
	IsAdmin bool
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func FromContext(ctx context.Context) (User, bool) {
	val := ctx.Value(UserKey)
	if val == nil {
		return User{}, false
	}
	user, ok := val.(User)
	return user, ok
}
