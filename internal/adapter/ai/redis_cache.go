package ai

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

const redisKeyPrefix = "embed:"

// redisEmbedCache shares embeddings across instances through Redis.
// Redis failures are logged and fall through to the wrapped Embedder.
type redisEmbedCache struct {
	base  domain.Embedder
	rdb   redis.UniversalClient
	model string
	ttl   time.Duration
}

// NewRedisEmbedCache wraps base with a Redis-backed cache. A nil client
// returns base unmodified. ttl <= 0 stores entries without expiry.
func NewRedisEmbedCache(base domain.Embedder, rdb redis.UniversalClient, model string, ttl time.Duration) domain.Embedder {
	if rdb == nil || base == nil {
		return base
	}
	if ttl < 0 {
		ttl = 0
	}
	return &redisEmbedCache{base: base, rdb: rdb, model: model, ttl: ttl}
}

func (c *redisEmbedCache) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	k := redisKeyPrefix + keyFor(c.model, text)
	lg := observability.LoggerFromContext(ctx)

	b, err := c.rdb.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		v, derr := decodeVector(b)
		if derr == nil {
			observability.ObserveCacheLookup("redis", true)
			return v, nil
		}
		lg.Warn("discarding corrupt cached embedding", slog.String("key", k), slog.Any("error", derr))
	case !errors.Is(err, redis.Nil):
		lg.Warn("redis embed cache get failed", slog.Any("error", err))
	}
	observability.ObserveCacheLookup("redis", false)

	v, err := c.base.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Set(ctx, k, encodeVector(v), c.ttl).Err(); err != nil {
		lg.Warn("redis embed cache set failed", slog.Any("error", err))
	}
	return v, nil
}

// encodeVector stores float32 values little-endian.
func encodeVector(v domain.EmbeddingVector) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

func decodeVector(b []byte) (domain.EmbeddingVector, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid vector payload length %d", len(b))
	}
	v := make(domain.EmbeddingVector, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
