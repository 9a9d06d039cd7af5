package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed window counter shared across replicas.
// Burst is ignored; the window allows RequestsPerWindow requests.
type RedisLimiter struct {
	Client redis.Cmdable
	Prefix string
	Limit  int
	Window time.Duration
}

// NewRedisLimiter builds a limiter whose keys are "<prefix>:<key>".
func NewRedisLimiter(client redis.Cmdable, prefix string, cfg RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{Client: client, Prefix: prefix, Limit: cfg.RequestsPerWindow, Window: cfg.Window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := fmt.Sprintf("%s:%s", l.Prefix, key)

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.Window)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis rate limit: %w", err)
	}

	if incr.Val() > int64(l.Limit) {
		wait := ttl.Val()
		if wait <= 0 {
			wait = l.Window
		}
		return false, wait, nil
	}
	return true, 0, nil
}
