package ai

import (
	"fmt"
	"log/slog"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

type truncatingEmbedder struct {
	base      domain.Embedder
	counter   *tokencount.Counter
	maxTokens int
}

// NewTruncatingEmbedder cuts texts to maxTokens before delegating to base.
// maxTokens <= 0 returns base unmodified.
func NewTruncatingEmbedder(base domain.Embedder, maxTokens int) domain.Embedder {
	if maxTokens <= 0 || base == nil {
		return base
	}
	return &truncatingEmbedder{base: base, counter: tokencount.DefaultCounter, maxTokens: maxTokens}
}

func (t *truncatingEmbedder) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	out, cut, err := t.counter.Truncate(text, t.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: truncate: %w", domain.ErrEmbedding, err)
	}
	if cut {
		observability.LoggerFromContext(ctx).Debug("embedding input truncated",
			slog.Int("max_tokens", t.maxTokens),
			slog.Int("original_len", len(text)),
			slog.Int("truncated_len", len(out)))
	}
	return t.base.Embed(ctx, out)
}
