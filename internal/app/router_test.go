package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/resume-fit-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/textextractor/native"
	"github.com/fairyhunter13/resume-fit-scorer/internal/app"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
	"github.com/fairyhunter13/resume-fit-scorer/internal/usecase"
)

type constEmbedder struct{}

func (constEmbedder) Embed(domain.Context, string) (domain.EmbeddingVector, error) {
	return domain.EmbeddingVector{1, 1}, nil
}

type memJobs map[string]domain.JobPosting

func (m memJobs) Get(_ domain.Context, id string) (domain.JobPosting, error) {
	if j, ok := m[id]; ok {
		return j, nil
	}
	return domain.JobPosting{}, domain.ErrNotFound
}

func newRouter(cfg config.Config, checks ...httpserver.ReadinessCheck) http.Handler {
	observability.InitMetrics()
	jobs := memJobs{"job-1": {ID: "job-1", Description: "Senior Go engineer, 5 years, Kubernetes"}}
	srv := httpserver.NewServer(cfg,
		usecase.NewFitScoreService(jobs, constEmbedder{}, cfg.GetFitConfig()),
		usecase.NewResumeService(native.New()),
		checks...,
	)
	return app.BuildRouter(cfg, srv)
}

func TestBuildRouter_HealthAndReady(t *testing.T) {
	h := newRouter(config.Config{}, httpserver.ReadinessCheck{Name: "db", Check: func(context.Context) error { return nil }})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRouter_FitScore(t *testing.T) {
	h := newRouter(config.Config{FitBatchConcurrency: 2, FitBatchMaxJobs: 5})

	req := httptest.NewRequest(http.MethodPost, "/fit-score", strings.NewReader(`{"resumeText":"Go developer, 6 years","jobId":"job-1"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"score":100`)

	req = httptest.NewRequest(http.MethodPost, "/fit-scores", strings.NewReader(`{"resumeText":"Go developer","jobIds":["job-1","job-2"]}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
}

func TestBuildRouter_RateLimit(t *testing.T) {
	h := newRouter(config.Config{RateLimitPerMin: 1})
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/fit-score", strings.NewReader(`{"resumeText":"x","jobId":"job-1"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}
	assert.Equal(t, http.StatusOK, send().Code)
	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), httpserver.CodeRateLimited)

	// read-only endpoints are not limited
	for i := 0; i < 3; i++ {
		r := httptest.NewRecorder()
		h.ServeHTTP(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, r.Code)
	}
}

func TestBuildRouter_Metrics(t *testing.T) {
	h := newRouter(config.Config{})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestBuildRouter_UnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(config.Config{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
