package command

import (
	"context"

	"github.com/AdamBeresnev/tourney-bot/internal/service"
	users "github.com/AdamBeresnev/tourney-bot/internal/user"
)

type HandlerFunc func(ctx context.Context, args []string) (Reply, error)

// RequireAdmin rejects callers without the administrator capability before
// their arguments are looked at.
func RequireAdmin(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, args []string) (Reply, error) {
		caller, ok := users.FromContext(ctx)
		if !ok || !caller.IsAdmin {
			return Reply{}, service.ErrUnauthorized
		}
		return next(ctx, args)
	}
}
