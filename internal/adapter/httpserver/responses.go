// Package httpserver contains HTTP handlers and middleware.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// Codes produced at the HTTP edge rather than by the domain.
const (
	CodeRateLimited     = "RATE_LIMITED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeNotAcceptable   = "NOT_ACCEPTABLE"
	CodeTimeout         = "TIMEOUT"
)

// errorBody is the single error shape of the API.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	lg := LoggerFrom(r)
	if status >= http.StatusInternalServerError {
		lg.Error("request failed", "error", err, "code", domain.ErrorCode(err))
	} else {
		lg.Info("request rejected", "error", err, "code", domain.ErrorCode(err))
	}
	writeJSON(w, status, errorBody{Error: domain.ErrorCode(err), Details: err.Error()})
}

// WriteEdgeError writes an error that has no domain counterpart.
func WriteEdgeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, errorBody{Error: code, Details: details})
}

// RateLimitExceeded is the handler invoked when the rate limiter rejects a request.
func RateLimitExceeded(w http.ResponseWriter, _ *http.Request) {
	WriteEdgeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
}
