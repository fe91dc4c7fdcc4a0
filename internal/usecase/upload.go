package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// ResumeService turns uploaded resume files into plain text. Nothing is stored.
type ResumeService struct {
	Extractor domain.TextExtractor
}

// NewResumeService constructs a ResumeService with the given extractor.
func NewResumeService(e domain.TextExtractor) ResumeService { return ResumeService{Extractor: e} }

// Extract returns doc with Text filled in. Empty files and documents that
// yield no text are rejected as invalid input.
func (s ResumeService) Extract(ctx context.Context, doc domain.ResumeDocument) (domain.ResumeDocument, error) {
	if len(doc.Data) == 0 {
		return domain.ResumeDocument{}, fmt.Errorf("%w: no file uploaded", domain.ErrInvalidArgument)
	}
	text, err := s.Extractor.Extract(ctx, doc)
	if err != nil {
		return domain.ResumeDocument{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ResumeDocument{}, fmt.Errorf("%w: could not extract text from resume", domain.ErrInvalidArgument)
	}
	observability.LoggerFromContext(ctx).Info("resume text extracted",
		slog.String("filename", doc.Filename),
		slog.String("mime", doc.BaseMIME()),
		slog.Int("bytes", len(doc.Data)),
		slog.Int("text_len", len(text)))
	doc.Text = text
	return doc, nil
}
