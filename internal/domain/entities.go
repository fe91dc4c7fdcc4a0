// Package domain holds the entities, ports and error taxonomy of the fit scorer.
package domain

import (
	"context"
	"strings"
	"time"
)

// Supported resume MIME types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

// ResumeDocument is an uploaded resume. It lives for a single upload request
// and is never persisted by the scorer; Text is handed back to the caller.
type ResumeDocument struct {
	Filename string
	MIME     string
	Data     []byte
	Text     string
}

// BaseMIME returns the lowercased media type without parameters
// ("text/plain; charset=utf-8" -> "text/plain").
func (d ResumeDocument) BaseMIME() string {
	m := strings.ToLower(strings.TrimSpace(d.MIME))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	return m
}

// JobPosting is owned by the job store. The scorer only reads Description;
// the other fields are carried for logging and seeding.
type JobPosting struct {
	ID              string
	Company         string
	Position        string
	Description     string
	ExperienceLevel string
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasDescription reports whether the posting carries a usable description.
func (j JobPosting) HasDescription() bool { return strings.TrimSpace(j.Description) != "" }

// EmbeddingVector is a fixed-length semantic encoding of a text.
type EmbeddingVector []float32

// Breakdown holds the rule-based sub-scores, each in [0,100].
type Breakdown struct {
	SkillsMatch     int `json:"skillsMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	KeywordOverlap  int `json:"keywordOverlap"`
}

// FitScoreResult is the composite scoring outcome.
//
// Score comes from embedding similarity only and is not derived from
// Breakdown. Degraded is set when the embedding path failed and the caller
// opted into partial results; Score is then 0 and meaningless.
type FitScoreResult struct {
	Score       int       `json:"score"`
	Breakdown   Breakdown `json:"breakdown"`
	Suggestions []string  `json:"suggestions"`
	Degraded    bool      `json:"degraded,omitempty"`
}

// Ports

//go:generate mockery --name=JobRepository --with-expecter --filename=job_repository_mock.go
//go:generate mockery --name=Embedder --with-expecter --filename=embedder_mock.go
//go:generate mockery --name=TextExtractor --with-expecter --filename=text_extractor_mock.go

// JobRepository is the read side of the external job store.
type JobRepository interface {
	Get(ctx Context, id string) (JobPosting, error)
}

// Embedder turns one text into an embedding vector using a named model.
type Embedder interface {
	Embed(ctx Context, text string) (EmbeddingVector, error)
}

// TextExtractor converts an uploaded document into plain text.
// Implementations dispatch on the document's MIME type.
type TextExtractor interface {
	Extract(ctx Context, doc ResumeDocument) (string, error)
}

// Context is an alias kept so ports read the same across packages.
type Context = context.Context
