package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// TokenBucket is a Redis-backed token bucket shared by every replica.
type TokenBucket struct {
	rdb        redis.UniversalClient
	capacity   int64
	refillRate float64 // tokens per second
	script     *redis.Script
}

// NewTokenBucket allows perMinute calls per minute with bursts up to
// perMinute. It returns nil when rdb is nil or perMinute <= 0; a nil
// bucket allows everything.
func NewTokenBucket(rdb redis.UniversalClient, perMinute int) *TokenBucket {
	if rdb == nil || perMinute <= 0 {
		return nil
	}
	return &TokenBucket{
		rdb:        rdb,
		capacity:   int64(perMinute),
		refillRate: float64(perMinute) / 60.0,
		script:     redis.NewScript(luaTokenBucketScript),
	}
}

// Redis truncates Lua numbers to integers in replies, so the wait is
// returned in whole milliseconds.
const luaTokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local cost = tonumber(ARGV[4])

local tokens = capacity
local last_refill = now

local data = redis.call("HMGET", key, "tokens", "last_refill")
if data[1] then
  tokens = tonumber(data[1])
end
if data[2] then
  last_refill = tonumber(data[2])
end

local delta = now - last_refill
if delta < 0 then
  delta = 0
end

tokens = math.min(capacity, tokens + delta * refill_rate)

local allowed = 0
local retry_after_ms = 0
if tokens >= cost then
  tokens = tokens - cost
  allowed = 1
else
  retry_after_ms = math.ceil((cost - tokens) / refill_rate * 1000)
end

redis.call("HMSET", key, "tokens", tokens, "last_refill", now)
redis.call("EXPIRE", key, math.ceil(capacity / refill_rate) + 60)

return { allowed, retry_after_ms }
`

// Allow takes cost tokens from the bucket named key. When the bucket is
// empty it reports how long until enough tokens are available.
func (b *TokenBucket) Allow(ctx context.Context, key string, cost int64) (bool, time.Duration, error) {
	if b == nil {
		return true, 0, nil
	}
	if cost <= 0 {
		cost = 1
	}
	now := float64(time.Now().UnixNano()) / 1e9
	res, err := b.script.Run(ctx, b.rdb, []string{"rate:" + key}, b.capacity, b.refillRate, now, cost).Slice()
	if err != nil {
		return true, 0, fmt.Errorf("op=ratelimit.Allow: %w", err)
	}
	if len(res) < 2 {
		return true, 0, fmt.Errorf("op=ratelimit.Allow: unexpected script result %v", res)
	}
	allowed := toInt64(res[0]) == 1
	wait := time.Duration(toInt64(res[1])) * time.Millisecond
	return allowed, wait, nil
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(math.Round(t))
	default:
		return 0
	}
}

type rateLimitedEmbedder struct {
	base   domain.Embedder
	bucket *TokenBucket
	key    string
}

// NewRateLimitedEmbedder throttles calls to base through bucket. Callers
// wait for a token until their context ends. Redis failures fail open.
func NewRateLimitedEmbedder(base domain.Embedder, bucket *TokenBucket, key string) domain.Embedder {
	if bucket == nil || base == nil {
		return base
	}
	return &rateLimitedEmbedder{base: base, bucket: bucket, key: key}
}

func (r *rateLimitedEmbedder) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	for {
		ok, wait, err := r.bucket.Allow(ctx, r.key, 1)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn("provider rate limiter unavailable",
				slog.String("bucket", r.key), slog.Any("error", err))
			return r.base.Embed(ctx, text)
		}
		if ok {
			return r.base.Embed(ctx, text)
		}
		if wait <= 0 {
			wait = 50 * time.Millisecond
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, fmt.Errorf("%w: waiting for provider rate limit: %w", domain.ErrEmbedding, ctx.Err())
		case <-t.C:
		}
	}
}
