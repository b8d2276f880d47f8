package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
)

var _ Cache = (*SessionCache)(nil)

const megabyte = 1024 * 1024

// SessionCache keeps resolved auth sessions in process memory, in front of
// the redis session store.
type SessionCache struct {
	cache *freecache.Cache
}

func NewSessionCache(sizeMB int) *SessionCache {
	if sizeMB <= 0 {
		sizeMB = 8
	}
	return &SessionCache{
		// freecache does its own locking
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (sc *SessionCache) Get(key string) (string, bool) {
	val, err := sc.cache.Get([]byte(key))
	if err != nil {
		return "", false
	}
	return string(val), true
}

// Set stores the value, ttl is rounded down to whole seconds. A ttl below
// one second is rejected, freecache would treat it as no expiry.
func (sc *SessionCache) Set(key, value string, ttl time.Duration) error {
	seconds := int(ttl / time.Second)
	if seconds < 1 {
		return errors.New("session cache: ttl below one second")
	}
	if err := sc.cache.Set([]byte(key), []byte(value), seconds); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

func (sc *SessionCache) Del(key string) {
	sc.cache.Del([]byte(key))
}

func (sc *SessionCache) Clear() {
	sc.cache.Clear()
}

func (sc *SessionCache) EntryCount() int64 {
	return sc.cache.EntryCount()
}
