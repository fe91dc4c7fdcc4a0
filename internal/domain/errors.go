package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtraction        = errors.New("extraction failed")
	ErrEmbedding         = errors.New("embedding failed")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInternal          = errors.New("internal error")
)

// DimensionError reports two vectors that cannot be compared.
// It unwraps to ErrDimensionMismatch.
type DimensionError struct {
	Left  int
	Right int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %d != %d", ErrDimensionMismatch, e.Left, e.Right)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// ErrorCode returns the stable machine-readable code for err.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnsupportedFormat):
		return "UNSUPPORTED_FORMAT"
	case errors.Is(err, ErrExtraction):
		return "EXTRACTION_FAILED"
	case errors.Is(err, ErrDimensionMismatch):
		return "DIMENSION_MISMATCH"
	case errors.Is(err, ErrEmbedding):
		return "EMBEDDING_FAILED"
	default:
		return "INTERNAL"
	}
}
