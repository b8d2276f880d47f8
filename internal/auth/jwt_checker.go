package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JWTChecker accepts HS256 bearer tokens whose subject is the user id.
type JWTChecker struct {
	secret []byte
}

func NewJWTChecker(secret string) (*JWTChecker, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret not set")
	}
	return &JWTChecker{
		secret: []byte(secret),
	}, nil
}

func (c *JWTChecker) Authenticate(_ context.Context, token string) (int, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrUnauthenticated
	}
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, ErrUnauthenticated
	}

	return userID, nil
}

// Sign issues a token for userID. Issuance belongs to the identity provider,
// this exists for tooling and tests.
func (c *JWTChecker) Sign(userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(c.secret)
}
