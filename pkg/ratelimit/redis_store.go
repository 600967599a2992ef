package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis sorted set per key, member score =
// request timestamp. Limits are shared across all service instances.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// recordScript atomically prunes expired members, checks the limit, and
// records the new timestamp. KEYS[1] = window key; ARGV = now (unix micros),
// window (micros), limit. Returns {allowed, count}.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
	return {0, count}
end

redis.call('ZADD', key, now, now .. '-' .. redis.call('INCR', key .. ':seq'))
redis.call('PEXPIRE', key, math.ceil(window / 1000))
redis.call('PEXPIRE', key .. ':seq', math.ceil(window / 1000))
return {1, count + 1}
`)

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

// RecordIfAllowed implements Store.
func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int64, error) {
	res, err := recordScript.Run(ctx, s.client,
		[]string{s.key(key)},
		now.UnixMicro(), window.Microseconds(), limit,
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis record: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("ratelimit: unexpected script result %v", res)
	}
	return res[0] == 1, res[1], nil
}

// CountInWindow implements Store.
func (s *RedisStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window).UnixMicro()
	count, err := s.client.ZCount(ctx, s.key(key), fmt.Sprintf("(%d", cutoff), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis count: %w", err)
	}
	return count, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key), s.key(key)+":seq").Err(); err != nil {
		return fmt.Errorf("ratelimit: redis delete: %w", err)
	}
	return nil
}

func (s *RedisStore) key(key string) string {
	return s.keyPrefix + ":" + key
}
