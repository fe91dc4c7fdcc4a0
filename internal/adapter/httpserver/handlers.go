package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
	"github.com/fairyhunter13/resume-fit-scorer/internal/usecase"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// uploadField is the multipart field carrying the resume file.
const uploadField = "resume"

// ReadinessCheck is one named dependency probe.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server aggregates handlers dependencies.
type Server struct {
	Cfg       config.Config
	FitScores usecase.FitScoreService
	Resumes   usecase.ResumeService
	Checks    []ReadinessCheck
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, fit usecase.FitScoreService, resumes usecase.ResumeService, checks ...ReadinessCheck) *Server {
	return &Server{Cfg: cfg, FitScores: fit, Resumes: resumes, Checks: checks}
}

// acceptsJSON rejects clients that cannot take a JSON response.
func acceptsJSON(w http.ResponseWriter, r *http.Request) bool {
	a := r.Header.Get("Accept")
	if a == "" || strings.Contains(a, "*/*") || strings.Contains(a, "application/json") {
		return true
	}
	WriteEdgeError(w, http.StatusNotAcceptable, CodeNotAcceptable, "only application/json responses are supported")
	return false
}

// decodeJSON reads a capped JSON body into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidArgument, err)
	}
	if err := getValidator().Struct(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, validationDetails(err))
	}
	return nil
}

// FitScoreHandler scores one resume text against one stored job posting.
//
// The response score is the embedding similarity; breakdown sub-scores are
// rule based and do not contribute to it.
func (s *Server) FitScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		var req fitScoreRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		res, err := s.FitScores.Score(r.Context(), req.ResumeText, req.JobID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type batchItemResponse struct {
	JobID  string                 `json:"jobId"`
	Result *domain.FitScoreResult `json:"result,omitempty"`
	Error  *errorBody             `json:"error,omitempty"`
}

// FitScoreBatchHandler scores one resume text against several job postings.
// Per-job failures are reported inline; the request itself succeeds.
func (s *Server) FitScoreBatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		var req fitScoreBatchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		items, err := s.FitScores.ScoreMany(r.Context(), req.ResumeText, req.JobIDs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out := make([]batchItemResponse, len(items))
		for i, it := range items {
			out[i] = batchItemResponse{JobID: it.JobID, Result: it.Result}
			if it.Err != nil {
				out[i].Error = &errorBody{Error: domain.ErrorCode(it.Err), Details: it.Err.Error()}
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": out})
	}
}

// UploadResumeHandler extracts plain text from a multipart resume upload.
func (s *Server) UploadResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(w, r) {
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument))
			return
		}
		maxBytes := s.Cfg.MaxUploadMB << 20
		// Leave room for multipart framing around the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
				WriteEdgeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, fmt.Sprintf("upload exceeds %d MB", s.Cfg.MaxUploadMB))
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile(uploadField)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: no file uploaded", domain.ErrInvalidArgument))
			return
		}
		defer func() { _ = file.Close() }()
		if header.Size > maxBytes {
			WriteEdgeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, fmt.Sprintf("upload exceeds %d MB", s.Cfg.MaxUploadMB))
			return
		}
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read upload: %v", domain.ErrInvalidArgument, err))
			return
		}

		doc := domain.ResumeDocument{
			Filename: header.Filename,
			MIME:     detectMIME(header.Header.Get("Content-Type"), data),
			Data:     data,
		}
		doc, err = s.Resumes.Extract(r.Context(), doc)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"resumeText": doc.Text})
	}
}

// detectMIME trusts the declared part type unless it is missing or generic,
// in which case the content is sniffed.
func detectMIME(declared string, data []byte) string {
	base := (domain.ResumeDocument{MIME: declared}).BaseMIME()
	if base == "" || base == "application/octet-stream" {
		return mimetype.Detect(data).String()
	}
	return declared
}

// HealthzHandler reports process liveness.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadyzHandler runs every dependency probe and reports 503 if any fails.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, len(s.Checks))
		ok := true
		for _, c := range s.Checks {
			if c.Check == nil {
				continue
			}
			if err := c.Check(ctx); err != nil {
				ok = false
				checks = append(checks, check{Name: c.Name, Details: err.Error()})
				continue
			}
			checks = append(checks, check{Name: c.Name, OK: true})
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
