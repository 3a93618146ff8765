package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript bumps the window counter and starts its expiry on the first hit.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisCounter is a Counter shared by every replica pointing at the same Redis.
type RedisCounter struct {
	client redis.Scripter
	prefix string
	now    func() time.Time
}

// NewRedisCounter creates a RedisCounter whose keys start with prefix.
func NewRedisCounter(client redis.Scripter, prefix string) *RedisCounter {
	return &RedisCounter{client: client, prefix: prefix, now: time.Now}
}

// Increment implements Counter.
func (r *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	vals, err := incrementScript.Run(ctx, r.client, []string{r.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected result %v", vals)
	}

	return vals[0], r.now().Add(time.Duration(vals[1]) * time.Millisecond), nil
}
