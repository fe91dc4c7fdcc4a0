package scoring

import "github.com/fairyhunter13/resume-fit-scorer/internal/domain"

// Suggestion thresholds and texts, emitted in this order.
const (
	SkillsThreshold     = 70
	ExperienceThreshold = 60
	KeywordThreshold    = 50

	SuggestSkills     = "Add more relevant skills from the job description."
	SuggestExperience = "Highlight roles and achievements that match the job level."
	SuggestKeywords   = "Include more keywords from the job post to improve visibility."
)

// Analyze computes the rule-based breakdown for a resume against a job
// description, together with improvement suggestions.
func Analyze(resumeText, jobText string) (domain.Breakdown, []string) {
	b := domain.Breakdown{
		SkillsMatch:     MatchSkills(resumeText, jobText),
		ExperienceMatch: MatchExperience(resumeText, jobText),
		KeywordOverlap:  KeywordOverlap(ExtractKeywords(resumeText), ExtractKeywords(jobText)),
	}
	return b, Suggestions(b)
}

// Suggestions returns one tip per sub-score below its threshold.
func Suggestions(b domain.Breakdown) []string {
	out := make([]string, 0, 3)
	if b.SkillsMatch < SkillsThreshold {
		out = append(out, SuggestSkills)
	}
	if b.ExperienceMatch < ExperienceThreshold {
		out = append(out, SuggestExperience)
	}
	if b.KeywordOverlap < KeywordThreshold {
		out = append(out, SuggestKeywords)
	}
	return out
}
