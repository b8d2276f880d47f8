package auth

import (
	"context"
	"errors"
)

var _ Checker = (*SessionChecker)(nil)
var _ Checker = (*JWTChecker)(nil)
var _ Checker = (*StaticChecker)(nil)

// ErrUnauthenticated is returned for unknown, expired or malformed credentials.
var ErrUnauthenticated = errors.New("unauthenticated")

// Checker resolves an already issued credential to the id of its user.
type Checker interface {
	Authenticate(ctx context.Context, token string) (int, error)
}

type userIDKey struct{}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int)
	return userID, ok
}
