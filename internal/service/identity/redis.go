package identity

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sandevgo/replybot/pkg/log"
)

type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisTracker shares the greeted set between replicas. Any Redis error
// degrades to a local in-memory set so greeting never blocks on Redis.
type RedisTracker struct {
	client redisClient
	prefix string
	local  *MemoryTracker
}

func NewRedisTracker(client redisClient, prefix string) *RedisTracker {
	return &RedisTracker{
		client: client,
		prefix: prefix,
		local:  NewMemoryTracker(),
	}
}

func (t *RedisTracker) key(identity string) string {
	return t.prefix + identity
}

func (t *RedisTracker) ShouldGreet(ctx context.Context, identity string) bool {
	if !t.local.ShouldGreet(ctx, identity) {
		return false
	}

	n, err := t.client.Exists(ctx, t.key(identity)).Result()
	if err != nil {
		t.warn(ctx, err, "exists")
		return true
	}
	return n == 0
}

func (t *RedisTracker) MarkGreeted(ctx context.Context, identity string) {
	t.local.MarkGreeted(ctx, identity)

	if err := t.client.Set(ctx, t.key(identity), 1, 0).Err(); err != nil {
		t.warn(ctx, err, "set")
	}
}

func (t *RedisTracker) Claim(ctx context.Context, identity string) bool {
	ok, err := t.client.SetNX(ctx, t.key(identity), 1, 0).Result()
	if err != nil {
		t.warn(ctx, err, "setnx")
		return t.local.Claim(ctx, identity)
	}

	// keep the local view in sync so a later outage does not re-greet
	t.local.MarkGreeted(ctx, identity)
	return ok
}

func (t *RedisTracker) warn(ctx context.Context, err error, op string) {
	log.FromCtx(ctx).Warn().
		Err(err).
		Str("op", op).
		Msg("greeted store unavailable, using local set")
}
