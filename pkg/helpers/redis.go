package helpers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. Short timeouts keep a slow Redis
// from stalling requests; callers fail open on rate limits.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// incrWindowScript counts a hit and starts the window on the first one. It
// returns the count and the remaining window in milliseconds.
var incrWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// HitWindow records one hit on key inside a fixed window.
func HitWindow(ctx context.Context, rdb redis.Scripter, key string, window time.Duration) (int64, time.Duration, error) {
	v, err := incrWindowScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(v) != 2 {
		return 0, 0, fmt.Errorf("redis: unexpected window reply %v", v)
	}
	ttl := time.Duration(toInt64(v[1])) * time.Millisecond
	if ttl < 0 {
		ttl = 0
	}
	return toInt64(v[0]), ttl, nil
}

// IncrWithExpiry increments key and starts its window on the first hit.
func IncrWithExpiry(ctx context.Context, rdb redis.Scripter, key string, window time.Duration) (int64, error) {
	n, _, err := HitWindow(ctx, rdb, key, window)
	return n, err
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case string:
		i, _ := strconv.ParseInt(x, 10, 64)
		return i
	}
	return 0
}
