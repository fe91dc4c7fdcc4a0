package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// SeniorityTerms is ordered; detection picks the first term in this order
// that appears anywhere in the text, not the most specific one.
var SeniorityTerms = []string{
	"intern", "fresher", "junior", "mid-level", "senior", "lead", "manager",
}

var yearsPattern = regexp.MustCompile(`\b(\d{1,2})\s+(?:years|yrs)\s+(?:of\s+)?experience\b`)

const (
	experienceBase        = 50
	experienceSeniorityUp = 20
	experienceYearsUp     = 30
)

// DetectSeniority returns the first SeniorityTerms entry contained in text
// (case-insensitive substring match), or "" when none is present.
func DetectSeniority(text string) string {
	lower := strings.ToLower(text)
	for _, term := range SeniorityTerms {
		if strings.Contains(lower, term) {
			return term
		}
	}
	return ""
}

// DetectYears returns N from the first "N years [of] experience" phrase.
func DetectYears(text string) (int, bool) {
	m := yearsPattern.FindStringSubmatch(normalizeSpace(strings.ToLower(text)))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MatchExperience scores seniority and years alignment on a 50 base:
// +20 when both texts resolve to the same seniority term and +30 when both
// state years of experience and the resume's is at least the job's.
func MatchExperience(resumeText, jobText string) int {
	score := experienceBase

	if js, rs := DetectSeniority(jobText), DetectSeniority(resumeText); js != "" && js == rs {
		score += experienceSeniorityUp
	}

	jobYears, jobOK := DetectYears(jobText)
	resumeYears, resumeOK := DetectYears(resumeText)
	if jobOK && resumeOK && resumeYears >= jobYears {
		score += experienceYearsUp
	}

	return min(score, 100)
}
