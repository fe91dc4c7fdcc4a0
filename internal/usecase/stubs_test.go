package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

type stubEmbedder struct {
	mu    sync.Mutex
	vecs  map[string]domain.EmbeddingVector
	errs  map[string]error
	calls int
}

func (s *stubEmbedder) Embed(ctx domain.Context, text string) (domain.EmbeddingVector, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.errs[text]; ok {
		return nil, err
	}
	if v, ok := s.vecs[text]; ok {
		return v, nil
	}
	return domain.EmbeddingVector{1, 1, 1}, nil
}

type stubJobRepo struct {
	jobs map[string]domain.JobPosting
	err  error
}

func (r *stubJobRepo) Get(_ domain.Context, id string) (domain.JobPosting, error) {
	if r.err != nil {
		return domain.JobPosting{}, r.err
	}
	j, ok := r.jobs[id]
	if !ok {
		return domain.JobPosting{}, domain.ErrNotFound
	}
	return j, nil
}

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(_ context.Context, _ domain.ResumeDocument) (string, error) {
	return s.text, s.err
}

var errProvider = errors.New("provider unavailable")
