// Package usecase contains application business logic services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
	"github.com/fairyhunter13/resume-fit-scorer/internal/scoring"
)

// FitScorer scores one resume text against one job description.
//
// The overall score comes only from embedding similarity. The breakdown and
// suggestions come only from the rule-based matchers. Neither feeds the other.
type FitScorer struct {
	Embedder domain.Embedder
	Cfg      config.FitConfig
}

// NewFitScorer constructs a FitScorer.
func NewFitScorer(e domain.Embedder, cfg config.FitConfig) FitScorer {
	return FitScorer{Embedder: e, Cfg: cfg}
}

// Analyze embeds both texts concurrently and computes the rule-based
// breakdown in the meantime. Any embedding failure fails the call unless
// degraded results are enabled; a dimension mismatch always fails.
func (s FitScorer) Analyze(ctx context.Context, resumeText, jobDescription string) (domain.FitScoreResult, error) {
	ctx, span := otel.Tracer("usecase.fitscore").Start(ctx, "FitScorer.Analyze")
	defer span.End()

	var resumeVec, jobVec domain.EmbeddingVector
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.Embedder.Embed(gctx, resumeText)
		if err != nil {
			return fmt.Errorf("op=fitscore.embed_resume: %w", asEmbeddingErr(err))
		}
		resumeVec = v
		return nil
	})
	g.Go(func() error {
		v, err := s.Embedder.Embed(gctx, jobDescription)
		if err != nil {
			return fmt.Errorf("op=fitscore.embed_job: %w", asEmbeddingErr(err))
		}
		jobVec = v
		return nil
	})

	breakdown, suggestions := scoring.Analyze(resumeText, jobDescription)
	res := domain.FitScoreResult{Breakdown: breakdown, Suggestions: suggestions}

	lg := observability.LoggerFromContext(ctx)
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		if s.Cfg.AllowDegraded && ctx.Err() == nil {
			lg.Warn("embedding failed; returning breakdown only", slog.Any("error", err))
			res.Degraded = true
			observability.ObserveFitScore(0, breakdown.SkillsMatch, breakdown.ExperienceMatch, breakdown.KeywordOverlap, true)
			return res, nil
		}
		return domain.FitScoreResult{}, err
	}

	sim, err := scoring.CosineSimilarity(resumeVec, jobVec)
	if err != nil {
		span.RecordError(err)
		return domain.FitScoreResult{}, fmt.Errorf("op=fitscore.similarity: %w", err)
	}
	res.Score = scoring.ScoreFromSimilarity(sim, s.Cfg.ClampScore)

	span.SetAttributes(
		attribute.Int("fit.score", res.Score),
		attribute.Int("fit.skills", breakdown.SkillsMatch),
		attribute.Int("fit.experience", breakdown.ExperienceMatch),
		attribute.Int("fit.keywords", breakdown.KeywordOverlap),
		attribute.Int("embedding.dims", len(resumeVec)),
	)
	observability.ObserveFitScore(res.Score, breakdown.SkillsMatch, breakdown.ExperienceMatch, breakdown.KeywordOverlap, false)
	lg.Debug("fit score computed",
		slog.Int("score", res.Score),
		slog.Float64("similarity", sim),
		slog.Int("suggestions", len(suggestions)))
	return res, nil
}

// asEmbeddingErr makes sure provider failures carry domain.ErrEmbedding.
func asEmbeddingErr(err error) error {
	if errors.Is(err, domain.ErrEmbedding) || errors.Is(err, domain.ErrDimensionMismatch) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
}

// FitScoreService is the request-level entry point: it validates input,
// loads the job posting and runs the scorer.
type FitScoreService struct {
	Jobs   domain.JobRepository
	Scorer FitScorer
	Cfg    config.FitConfig
}

// NewFitScoreService constructs a FitScoreService with its dependencies.
func NewFitScoreService(jobs domain.JobRepository, e domain.Embedder, cfg config.FitConfig) FitScoreService {
	return FitScoreService{Jobs: jobs, Scorer: NewFitScorer(e, cfg), Cfg: cfg}
}

// Score computes the fit of resumeText against the job identified by jobID.
func (s FitScoreService) Score(ctx context.Context, resumeText, jobID string) (domain.FitScoreResult, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobID) == "" {
		return domain.FitScoreResult{}, fmt.Errorf("%w: resumeText and jobId are required", domain.ErrInvalidArgument)
	}
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return domain.FitScoreResult{}, err
	}
	return s.Scorer.Analyze(ctx, resumeText, job.Description)
}

func (s FitScoreService) loadJob(ctx context.Context, jobID string) (domain.JobPosting, error) {
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return domain.JobPosting{}, err
	}
	if !job.HasDescription() {
		return domain.JobPosting{}, fmt.Errorf("%w: job %s has no description", domain.ErrNotFound, jobID)
	}
	return job, nil
}

// BatchItem is the outcome for one job of a batch request. Exactly one of
// Result and Err is set.
type BatchItem struct {
	JobID  string
	Result *domain.FitScoreResult
	Err    error
}

// ScoreMany scores one resume against several jobs with bounded
// concurrency. A failing job is reported in its item and does not cancel
// the others. Items are returned in request order.
func (s FitScoreService) ScoreMany(ctx context.Context, resumeText string, jobIDs []string) ([]BatchItem, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("%w: resumeText is required", domain.ErrInvalidArgument)
	}
	if len(jobIDs) == 0 {
		return nil, fmt.Errorf("%w: jobIds must not be empty", domain.ErrInvalidArgument)
	}
	if s.Cfg.BatchMaxJobs > 0 && len(jobIDs) > s.Cfg.BatchMaxJobs {
		return nil, fmt.Errorf("%w: at most %d jobIds per request, got %d", domain.ErrInvalidArgument, s.Cfg.BatchMaxJobs, len(jobIDs))
	}

	items := make([]BatchItem, len(jobIDs))
	var g errgroup.Group
	g.SetLimit(max(1, s.Cfg.BatchConcurrency))
	for i, id := range jobIDs {
		items[i].JobID = id
		g.Go(func() error {
			res, err := s.Score(ctx, resumeText, id)
			if err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()
	return items, nil
}
