package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/ai"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/ai/gemini"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/ai/real"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/textextractor/native"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/textextractor/tika"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// NewEmbedder builds the configured embedding provider and layers token
// truncation, the Redis-backed provider limiter and cache, and the
// in-process LRU over it. rdb may be nil.
func NewEmbedder(ctx context.Context, cfg config.Config, rdb redis.UniversalClient) (domain.Embedder, error) {
	var (
		base  domain.Embedder
		model = cfg.EmbeddingsModel
	)
	switch cfg.Provider() {
	case config.ProviderGemini:
		g, err := gemini.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("op=app.NewEmbedder: %w", err)
		}
		base, model = g, g.Model()
	default:
		c, err := real.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("op=app.NewEmbedder: %w", err)
		}
		base = c
	}

	e := ai.NewTruncatingEmbedder(base, cfg.EmbedMaxTokens)
	if rdb != nil {
		e = ai.NewRateLimitedEmbedder(e, ai.NewTokenBucket(rdb, cfg.EmbedProviderRPM), "embed:"+cfg.Provider())
		e = ai.NewRedisEmbedCache(e, rdb, model, cfg.EmbedCacheTTL)
	}
	e = ai.NewEmbedCache(e, model, cfg.EmbedCacheSize)
	slog.Info("embedder configured",
		slog.String("provider", cfg.Provider()),
		slog.String("model", model),
		slog.Bool("redis_cache", rdb != nil),
		slog.Int("provider_rpm", cfg.EmbedProviderRPM),
		slog.Int("max_tokens", cfg.EmbedMaxTokens))
	return e, nil
}

// NewExtractor returns the Tika-backed extractor when TIKA_URL is set and
// the in-process parsers otherwise. The returned Pinger is nil without Tika.
func NewExtractor(cfg config.Config) (domain.TextExtractor, Pinger) {
	local := native.New()
	if cfg.TikaURL == "" {
		return local, nil
	}
	c := tika.New(cfg.TikaURL, local)
	return c, c
}
