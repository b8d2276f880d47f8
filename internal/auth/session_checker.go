package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/cache"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// SessionChecker resolves opaque session tokens stored in redis. Resolved
// sessions are kept in a local cache for a short while, so hot tokens do not
// hit redis on every request.
type SessionChecker struct {
	ttl         time.Duration
	cacheTTL    time.Duration
	redisClient *redis.Client
	cache       cache.Cache
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client, sessionCache cache.Cache) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		cacheTTL:    time.Minute,
		redisClient: redisClient,
		cache:       sessionCache,
		now:         time.Now,
	}
}

func (sc *SessionChecker) Authenticate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}

	sessionKey := sessionKeyPrefix + token
	val, cached := "", false
	if sc.cache != nil {
		val, cached = sc.cache.Get(sessionKey)
	}
	if !cached {
		cmd := sc.redisClient.Get(ctx, sessionKey)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				return 0, ErrUnauthenticated
			}
			return 0, fmt.Errorf("get session: %w", err)
		}
		val = cmd.Val()
	}

	session, err := parseSession(val)
	if err != nil {
		log.Debugf("session checker: %s", err)
		return 0, ErrUnauthenticated
	}
	if session.Expired(sc.ttl, sc.now()) {
		if sc.cache != nil {
			sc.cache.Del(sessionKey)
		}
		return 0, ErrUnauthenticated
	}

	if !cached && sc.cache != nil {
		if err := sc.cache.Set(sessionKey, val, sc.cacheTTL); err != nil {
			log.Warnf("session checker, cache session: %s", err)
		}
	}

	return session.UserID, nil
}

// Forget drops a token from the local cache, used on logout.
func (sc *SessionChecker) Forget(token string) {
	if sc.cache != nil {
		sc.cache.Del(sessionKeyPrefix + token)
	}
}
