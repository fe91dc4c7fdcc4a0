package httpserver

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// fitScoreRequest is the body of POST /fit-score.
type fitScoreRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
	JobID      string `json:"jobId" validate:"required,max=100"`
}

// fitScoreBatchRequest is the body of POST /fit-scores.
type fitScoreBatchRequest struct {
	ResumeText string   `json:"resumeText" validate:"required"`
	JobIDs     []string `json:"jobIds" validate:"required,min=1,dive,required,max=100"`
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names instead of Go field names.
		vld.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// validationDetails renders validator errors as "field: tag" pairs.
func validationDetails(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
