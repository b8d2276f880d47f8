package cache

import "time"

// Cache is a small string key/value cache with per-entry expiry.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration) error
	Del(key string)
	Clear()
}
