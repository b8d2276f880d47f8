package auth

import "context"

// StaticChecker resolves tokens from a fixed map. Used in tests and local dev.
type StaticChecker struct {
	Tokens map[string]int
}

func NewStaticChecker() *StaticChecker {
	return &StaticChecker{
		Tokens: map[string]int{},
	}
}

func (c *StaticChecker) Authenticate(_ context.Context, token string) (int, error) {
	userID, ok := c.Tokens[token]
	if !ok {
		return 0, ErrUnauthenticated
	}
	return userID, nil
}
