// Package gemini implements domain.Embedder on the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

const (
	providerName = "gemini"
	defaultModel = "text-embedding-004"
)

// embedAPI is the subset of *genai.Models used by the embedder.
type embedAPI interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder calls the Gemini embedContent endpoint.
type Embedder struct {
	api     embedAPI
	model   string
	timeout time.Duration
	cfg     config.Config
}

var _ domain.Embedder = (*Embedder)(nil)

// New creates an Embedder configured for the Gemini API backend.
func New(ctx context.Context, cfg config.Config) (*Embedder, error) {
	apiKey := strings.TrimSpace(cfg.GeminiAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY missing", domain.ErrInvalidArgument)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("op=gemini.New: create genai client: %w", err)
	}
	return newEmbedder(client.Models, cfg), nil
}

func newEmbedder(api embedAPI, cfg config.Config) *Embedder {
	model := strings.TrimSpace(cfg.EmbeddingsModel)
	// The Hugging Face default is meaningless to Gemini.
	if model == "" || strings.Contains(model, "/") {
		model = defaultModel
	}
	return &Embedder{api: api, model: model, timeout: cfg.EmbedTimeout, cfg: cfg}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string { return e.model }

// Embed returns the embedding of text. 429 and 5xx API errors are retried.
func (e *Embedder) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	lg := observability.LoggerFromContext(ctx).With(slog.String("provider", providerName), slog.String("model", e.model))
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	var vec domain.EmbeddingVector
	op := func() error {
		attemptCtx := ctx
		if e.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}
		start := time.Now()
		resp, err := e.api.EmbedContent(attemptCtx, e.model, contents, nil)
		observability.ObserveAIRequest(providerName, "embed", err, time.Since(start))
		if err != nil {
			if ctx.Err() != nil || !retryable(err) {
				return backoff.Permanent(err)
			}
			lg.Warn("gemini embed retryable error", slog.Any("error", err))
			return err
		}
		if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
			return backoff.Permanent(errors.New("gemini api returned empty embedding"))
		}
		vec = domain.EmbeddingVector(resp.Embeddings[0].Values)
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime, expo.InitialInterval, expo.MaxInterval, expo.Multiplier = e.cfg.GetAIBackoffConfig()
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		lg.Error("gemini embed failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrEmbedding, providerName, err)
	}
	return vec, nil
}

func retryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	// Transport errors are worth another attempt.
	return true
}
