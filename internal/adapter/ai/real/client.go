// Package real implements embedding clients backed by the Hugging Face
// inference API and the OpenAI embeddings API.
package real

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// Client implements domain.Embedder over HTTP for the configured provider.
type Client struct {
	cfg      config.Config
	provider string
	hc       *http.Client
}

var _ domain.Embedder = (*Client)(nil)

// readSnippet reads up to n bytes from r for logging.
func readSnippet(r io.Reader, n int64) string {
	if r == nil || n <= 0 {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, n))
	return string(b)
}

// New constructs an embedding client for cfg.Provider(). Gemini is served
// by its own SDK adapter and is rejected here.
func New(cfg config.Config) (*Client, error) {
	p := cfg.Provider()
	switch p {
	case config.ProviderHuggingFace:
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY missing", domain.ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("%w: provider %q not served by http client", domain.ErrInvalidArgument, p)
	}
	if cfg.EmbeddingsModel == "" {
		return nil, fmt.Errorf("%w: EMBEDDINGS_MODEL missing", domain.ErrInvalidArgument)
	}
	return &Client{
		cfg:      cfg,
		provider: p,
		// Per-attempt deadlines come from the context; no client-wide timeout.
		hc: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}, nil
}

// Provider returns the provider name used for logs and metrics.
func (c *Client) Provider() string { return c.provider }

func (c *Client) getBackoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	return expo
}

func (c *Client) endpoint() string {
	if c.provider == config.ProviderOpenAI {
		return strings.TrimRight(c.cfg.OpenAIBaseURL, "/") + "/embeddings"
	}
	return strings.TrimRight(c.cfg.HuggingFaceBaseURL, "/") + "/" + c.cfg.EmbeddingsModel + "/pipeline/feature-extraction"
}

func (c *Client) payload(text string) ([]byte, error) {
	if c.provider == config.ProviderOpenAI {
		return json.Marshal(map[string]any{"model": c.cfg.EmbeddingsModel, "input": text})
	}
	return json.Marshal(map[string]any{"inputs": text})
}

func (c *Client) apiKey() string {
	if c.provider == config.ProviderOpenAI {
		return c.cfg.OpenAIAPIKey
	}
	return c.cfg.HuggingFaceAPIKey
}

// Embed returns the embedding vector of text. Rate limits and 5xx responses
// are retried with exponential backoff; other 4xx responses fail at once.
func (c *Client) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	lg := observability.LoggerFromContext(ctx).With(
		slog.String("provider", c.provider),
		slog.String("model", c.cfg.EmbeddingsModel),
	)
	b, err := c.payload(text)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", domain.ErrEmbedding, err)
	}
	url := c.endpoint()

	var vec domain.EmbeddingVector
	attempts := 0
	op := func() error {
		attempts++
		attemptCtx := ctx
		if c.cfg.EmbedTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.cfg.EmbedTimeout)
			defer cancel()
		}
		start := time.Now()
		// Recreate request each attempt to avoid reusing consumed bodies
		r, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		if key := c.apiKey(); key != "" {
			r.Header.Set("Authorization", "Bearer "+key)
		}
		r.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(r)
		if err != nil {
			observability.ObserveAIRequest(c.provider, "embed", err, time.Since(start))
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			err = fmt.Errorf("rate limited: %d", resp.StatusCode)
			lg.Warn("embedding provider rate limited", slog.Int("status", resp.StatusCode), slog.Int("attempt", attempts))
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			err = backoff.Permanent(fmt.Errorf("embed status %d", resp.StatusCode))
			lg.Warn("embedding provider 4xx", slog.Int("status", resp.StatusCode), slog.String("endpoint", url), slog.String("body", readSnippet(resp.Body, 512)))
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			err = fmt.Errorf("embed status %d", resp.StatusCode)
			lg.Error("embedding provider non-2xx", slog.Int("status", resp.StatusCode), slog.String("endpoint", url), slog.String("body", readSnippet(resp.Body, 512)))
		default:
			vec, err = c.decode(resp.Body)
			if err != nil {
				lg.Error("embedding provider decode error", slog.Any("error", err))
				err = backoff.Permanent(err)
			}
		}
		observability.ObserveAIRequest(c.provider, "embed", err, time.Since(start))
		return err
	}

	bo := backoff.WithContext(c.getBackoffConfig(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		lg.Error("embedding failed after retries", slog.Int("attempts", attempts), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrEmbedding, c.provider, err)
	}
	lg.Debug("embedding ok", slog.Int("dims", len(vec)), slog.Int("attempts", attempts))
	return vec, nil
}

func (c *Client) decode(r io.Reader) (domain.EmbeddingVector, error) {
	if c.provider == config.ProviderOpenAI {
		var out struct {
			Data []struct {
				Embedding []float32 `json:"embedding"`
			} `json:"data"`
		}
		if err := json.NewDecoder(r).Decode(&out); err != nil {
			return nil, err
		}
		if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
			return nil, errors.New("empty data from embeddings api")
		}
		return domain.EmbeddingVector(out.Data[0].Embedding), nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeFeatureExtraction(raw)
}

// decodeFeatureExtraction accepts either a pooled vector or a per-token
// matrix, which is mean-pooled into a single vector.
func decodeFeatureExtraction(raw []byte) (domain.EmbeddingVector, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		if len(flat) == 0 {
			return nil, errors.New("empty embedding")
		}
		return flat, nil
	}
	var matrix [][]float32
	if err := json.Unmarshal(raw, &matrix); err != nil {
		return nil, fmt.Errorf("unexpected feature-extraction response: %w", err)
	}
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, errors.New("empty embedding")
	}
	dims := len(matrix[0])
	sum := make([]float64, dims)
	for _, row := range matrix {
		if len(row) != dims {
			return nil, fmt.Errorf("ragged token matrix: %d != %d", len(row), dims)
		}
		for i, v := range row {
			sum[i] += float64(v)
		}
	}
	out := make(domain.EmbeddingVector, dims)
	for i := range sum {
		out[i] = float32(sum[i] / float64(len(matrix)))
	}
	return out, nil
}
