package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/textextractor/native"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
	"github.com/fairyhunter13/resume-fit-scorer/internal/scoring"
	"github.com/fairyhunter13/resume-fit-scorer/internal/usecase"
)

type stubEmbedder struct {
	vecs map[string]domain.EmbeddingVector
	err  error
}

func (s stubEmbedder) Embed(_ domain.Context, text string) (domain.EmbeddingVector, error) {
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vecs[text]; ok {
		return v, nil
	}
	return domain.EmbeddingVector{1, 0}, nil
}

type stubJobs map[string]domain.JobPosting

func (s stubJobs) Get(_ domain.Context, id string) (domain.JobPosting, error) {
	j, ok := s[id]
	if !ok {
		return domain.JobPosting{}, domain.ErrNotFound
	}
	return j, nil
}

const (
	testResume = "5 years experience in React and Node.js"
	testJob    = "We need a senior engineer with 3 years experience in React, Node.js, AWS"
)

func newTestServer(emb domain.Embedder, fitCfg config.FitConfig) *Server {
	jobs := stubJobs{
		"job-1": {ID: "job-1", Description: testJob},
		"empty": {ID: "empty", Description: ""},
	}
	cfg := config.Config{MaxUploadMB: 1}
	return NewServer(cfg,
		usecase.NewFitScoreService(jobs, emb, fitCfg),
		usecase.NewResumeService(native.New()),
	)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func postJSON(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/fit-score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFitScoreHandler_OK(t *testing.T) {
	emb := stubEmbedder{vecs: map[string]domain.EmbeddingVector{testResume: {1, 0}, testJob: {0.6, 0.8}}}
	s := newTestServer(emb, config.FitConfig{})

	rec := postJSON(s.FitScoreHandler(), `{"resumeText":"`+testResume+`","jobId":"job-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 60, got["score"])
	assert.Equal(t, map[string]any{"skillsMatch": 67.0, "experienceMatch": 80.0, "keywordOverlap": 50.0}, got["breakdown"])
	assert.Equal(t, []any{scoring.SuggestSkills}, got["suggestions"])
	_, hasDegraded := got["degraded"]
	assert.False(t, hasDegraded)
}

func TestFitScoreHandler_Errors(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"invalid json", `{`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"missing resume", `{"jobId":"job-1"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"missing job id", `{"resumeText":"x"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"blank resume", `{"resumeText":"   ","jobId":"job-1"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown job", `{"resumeText":"x","jobId":"nope"}`, http.StatusNotFound, "NOT_FOUND"},
		{"job without description", `{"resumeText":"x","jobId":"empty"}`, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(s.FitScoreHandler(), tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Error)
			assert.NotEmpty(t, body.Details)
		})
	}
}

func TestFitScoreHandler_EmbeddingFailure(t *testing.T) {
	s := newTestServer(stubEmbedder{err: errors.New("hf down")}, config.FitConfig{})
	rec := postJSON(s.FitScoreHandler(), `{"resumeText":"x","jobId":"job-1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "EMBEDDING_FAILED", decodeError(t, rec).Error)
}

func TestFitScoreHandler_DegradedMode(t *testing.T) {
	s := newTestServer(stubEmbedder{err: errors.New("hf down")}, config.FitConfig{AllowDegraded: true})
	rec := postJSON(s.FitScoreHandler(), `{"resumeText":"`+testResume+`","jobId":"job-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.FitScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Degraded)
	assert.Equal(t, 67, got.Breakdown.SkillsMatch)
}

func TestFitScoreHandler_DimensionMismatch(t *testing.T) {
	emb := stubEmbedder{vecs: map[string]domain.EmbeddingVector{"x": {1, 2, 3}}}
	s := newTestServer(emb, config.FitConfig{})
	rec := postJSON(s.FitScoreHandler(), `{"resumeText":"x","jobId":"job-1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DIMENSION_MISMATCH", decodeError(t, rec).Error)
}

func TestFitScoreHandler_NotAcceptable(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})
	req := httptest.NewRequest(http.MethodPost, "/fit-score", strings.NewReader(`{}`))
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	s.FitScoreHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
	assert.Equal(t, CodeNotAcceptable, decodeError(t, rec).Error)
}

func TestFitScoreBatchHandler(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{BatchConcurrency: 2, BatchMaxJobs: 3})

	rec := postJSON(s.FitScoreBatchHandler(), `{"resumeText":"React developer","jobIds":["job-1","nope"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Results []struct {
			JobID  string                 `json:"jobId"`
			Result *domain.FitScoreResult `json:"result"`
			Error  *errorBody             `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 2)
	assert.Equal(t, "job-1", got.Results[0].JobID)
	require.NotNil(t, got.Results[0].Result)
	assert.Nil(t, got.Results[0].Error)
	assert.Equal(t, "nope", got.Results[1].JobID)
	require.NotNil(t, got.Results[1].Error)
	assert.Equal(t, "NOT_FOUND", got.Results[1].Error.Error)

	rec = postJSON(s.FitScoreBatchHandler(), `{"resumeText":"x","jobIds":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(s.FitScoreBatchHandler(), `{"resumeText":"x","jobIds":["a","b","c","d"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		if contentType != "" {
			h.Set("Content-Type", contentType)
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/resume/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadResumeHandler(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})

	tests := []struct {
		name   string
		req    *http.Request
		status int
		code   string
		text   string
	}{
		{
			name:   "plain text declared",
			req:    multipartRequest(t, "resume", "cv.txt", "text/plain; charset=utf-8", []byte("Go developer with SQL")),
			status: http.StatusOK,
			text:   "Go developer with SQL",
		},
		{
			name:   "octet-stream is sniffed",
			req:    multipartRequest(t, "resume", "cv.txt", "application/octet-stream", []byte("Python engineer")),
			status: http.StatusOK,
			text:   "Python engineer",
		},
		{
			name:   "png rejected",
			req:    multipartRequest(t, "resume", "cv.png", "image/png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}),
			status: http.StatusBadRequest,
			code:   "UNSUPPORTED_FORMAT",
		},
		{
			name:   "no file",
			req:    multipartRequest(t, "", "", "", nil),
			status: http.StatusBadRequest,
			code:   "INVALID_ARGUMENT",
		},
		{
			name:   "whitespace only text",
			req:    multipartRequest(t, "resume", "cv.txt", "text/plain", []byte("  \n ")),
			status: http.StatusBadRequest,
			code:   "INVALID_ARGUMENT",
		},
		{
			name:   "corrupt pdf",
			req:    multipartRequest(t, "resume", "cv.pdf", "application/pdf", []byte("%PDF-1.4 broken")),
			status: http.StatusInternalServerError,
			code:   "EXTRACTION_FAILED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.UploadResumeHandler().ServeHTTP(rec, tt.req)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, rec).Error)
				return
			}
			var got map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.text, got["resumeText"])
		})
	}
}

func TestUploadResumeHandler_NotMultipart(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})
	req := httptest.NewRequest(http.MethodPost, "/resume/upload", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.UploadResumeHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadResumeHandler_TooLarge(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})
	big := bytes.Repeat([]byte("a"), 3<<20)
	rec := httptest.NewRecorder()
	s.UploadResumeHandler().ServeHTTP(rec, multipartRequest(t, "resume", "cv.txt", "text/plain", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, CodePayloadTooLarge, decodeError(t, rec).Error)
}

func TestUploadResumeHandler_FileOverLimit(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})
	data := bytes.Repeat([]byte("a"), (1<<20)+512)
	rec := httptest.NewRecorder()
	s.UploadResumeHandler().ServeHTTP(rec, multipartRequest(t, "resume", "cv.txt", "text/plain", data))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", detectMIME("application/pdf", nil))
	assert.Equal(t, "application/pdf", detectMIME("", []byte("%PDF-1.7\n")))
	assert.True(t, strings.HasPrefix(detectMIME("application/octet-stream", []byte("hello")), "text/plain"))
}

func TestReadyzHandler(t *testing.T) {
	s := newTestServer(stubEmbedder{}, config.FitConfig{})
	s.Checks = []ReadinessCheck{
		{Name: "db", Check: func(context.Context) error { return nil }},
		{Name: "skipped"},
	}
	rec := httptest.NewRecorder()
	s.ReadyzHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	s.Checks = append(s.Checks, ReadinessCheck{Name: "redis", Check: func(context.Context) error { return errors.New("down") }})
	rec = httptest.NewRecorder()
	s.ReadyzHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"redis"`)
}

func TestHealthzHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(stubEmbedder{}, config.FitConfig{}).HealthzHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
