package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "workouts-session||"
	tokensSetKey     = "workouts-sessions"
)

// Session is what a session token resolves to. In redis it is stored as
// "<userId>|<createdAtUnix>".
type Session struct {
	UserID    int
	CreatedAt time.Time
}

func (s Session) String() string {
	return fmt.Sprintf("%d|%d", s.UserID, s.CreatedAt.Unix())
}

func (s Session) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}

func parseSession(val string) (Session, error) {
	userIDStr, createdAtStr, found := strings.Cut(val, "|")
	if !found {
		return Session{}, fmt.Errorf("malformed session value %q", val)
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil || userID <= 0 {
		return Session{}, fmt.Errorf("malformed session user id %q", userIDStr)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("malformed session created at %q", createdAtStr)
	}
	return Session{
		UserID:    userID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}
