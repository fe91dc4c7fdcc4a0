// Package tika provides Apache Tika integration for text extraction.
package tika

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
	"github.com/fairyhunter13/resume-fit-scorer/pkg/textx"
)

const defaultBaseURL = "http://localhost:9998"

// Client is a minimal Apache Tika HTTP client implementing domain.TextExtractor.
// It performs PUT /tika with Accept: text/plain to retrieve extracted text.
// Plain text never leaves the process; it goes to the local extractor.
// See: https://tika.apache.org/server/ for API details.
type Client struct {
	baseURL    string
	httpClient *http.Client
	local      domain.TextExtractor
}

var _ domain.TextExtractor = (*Client)(nil)

// New constructs a Tika client with a default timeout. local handles text/plain.
func New(baseURL string, local domain.TextExtractor) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		local:      local,
	}
}

// Extract uploads PDF and DOCX documents to the Tika server and returns plain text.
func (c *Client) Extract(ctx context.Context, doc domain.ResumeDocument) (string, error) {
	mime := doc.BaseMIME()
	switch mime {
	case domain.MIMEText:
		if c.local == nil {
			return "", fmt.Errorf("%w: no local extractor for %s", domain.ErrInternal, mime)
		}
		return c.local.Extract(ctx, doc)
	case domain.MIMEPDF, domain.MIMEDOCX:
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.MIME)
	}

	ctx, span := otel.Tracer("textextractor.tika").Start(ctx, "tika.Extract")
	defer span.End()
	span.SetAttributes(attribute.String("doc.mime", mime), attribute.Int("doc.bytes", len(doc.Data)))

	text, err := c.put(ctx, mime, doc.Data)
	observability.ObserveExtraction(mime, err)
	if err != nil {
		span.RecordError(err)
		observability.LoggerFromContext(ctx).Warn("tika extraction failed",
			slog.String("mime", mime),
			slog.String("filename", doc.Filename),
			slog.Any("error", err))
		return "", fmt.Errorf("%w: tika: %w", domain.ErrExtraction, err)
	}
	return text, nil
}

func (c *Client) put(ctx context.Context, mime string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Content-Type", mime)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tika status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	// Strip control characters and collapse Tika's layout whitespace.
	return textx.NormalizeWhitespace(textx.SanitizeText(string(b))), nil
}

// Ping checks that the Tika server answers GET /version.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tika status %d", resp.StatusCode)
	}
	return nil
}
