package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// RedisClientOrSkip connects to the redis at WT_TEST_REDIS_HOST, skipping the
// test when the variable is unset. WT_TEST_REDIS_PASS is optional.
func RedisClientOrSkip(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	redisHost := os.Getenv("WT_TEST_REDIS_HOST")
	if redisHost == "" {
		t.Skip("no test redis, set WT_TEST_REDIS_HOST")
	}
	redisPort := os.Getenv("WT_TEST_REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	t.Logf("using redis: [%s:%s]", redisHost, redisPort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, redisPort),
		Password: os.Getenv("WT_TEST_REDIS_PASS"),
		DB:       0, // use default DB
	})
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Logf("close redis client: %s", err)
		}
	})

	pingRes, err := rdb.Ping(ctx).Result()
	require.NoError(t, err)
	t.Logf("redis ping res: %s", pingRes)

	return ctx, rdb
}
