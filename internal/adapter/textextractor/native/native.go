// Package native extracts resume text in process, without external services.
package native

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// Extractor implements domain.TextExtractor for PDF, DOCX and plain text.
type Extractor struct{}

var _ domain.TextExtractor = Extractor{}

// New returns a native extractor.
func New() Extractor { return Extractor{} }

// Supported reports whether mime (parameters allowed) can be extracted.
func Supported(mime string) bool {
	switch (domain.ResumeDocument{MIME: mime}).BaseMIME() {
	case domain.MIMEPDF, domain.MIMEDOCX, domain.MIMEText:
		return true
	}
	return false
}

// Extract dispatches on the document MIME type.
func (Extractor) Extract(ctx context.Context, doc domain.ResumeDocument) (string, error) {
	mime := doc.BaseMIME()
	ctx, span := otel.Tracer("textextractor.native").Start(ctx, "native.Extract")
	defer span.End()
	span.SetAttributes(attribute.String("doc.mime", mime), attribute.Int("doc.bytes", len(doc.Data)))

	var (
		text string
		err  error
	)
	switch mime {
	case domain.MIMEPDF:
		text, err = extractPDF(doc.Data)
	case domain.MIMEDOCX:
		text, err = extractDOCX(doc.Data)
	case domain.MIMEText:
		text = decodeText(doc.Data)
	default:
		span.SetStatus(codes.Error, "unsupported format")
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.MIME)
	}
	observability.ObserveExtraction(mime, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.LoggerFromContext(ctx).Warn("text extraction failed",
			slog.String("mime", mime),
			slog.String("filename", doc.Filename),
			slog.Any("error", err))
		return "", fmt.Errorf("%w: %s: %w", domain.ErrExtraction, mime, err)
	}
	span.SetAttributes(attribute.Int("text.len", len(text)))
	return text, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText reads b as UTF-8. Invalid sequences become U+FFFD.
func decodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "�")
}
