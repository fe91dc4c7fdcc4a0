package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	b, sugg := Analyze(
		"5 years experience in React and Node.js",
		"We need a senior engineer with 3 years experience in React, Node.js, AWS",
	)
	assert.Equal(t, domain.Breakdown{SkillsMatch: 67, ExperienceMatch: 80, KeywordOverlap: 50}, b)
	assert.Equal(t, []string{SuggestSkills}, sugg)
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   domain.Breakdown
		want []string
	}{
		{"none", domain.Breakdown{SkillsMatch: 70, ExperienceMatch: 60, KeywordOverlap: 50}, []string{}},
		{"all three in fixed order", domain.Breakdown{SkillsMatch: 69, ExperienceMatch: 59, KeywordOverlap: 49}, []string{SuggestSkills, SuggestExperience, SuggestKeywords}},
		{"experience only", domain.Breakdown{SkillsMatch: 100, ExperienceMatch: 50, KeywordOverlap: 90}, []string{SuggestExperience}},
		{"skills and keywords", domain.Breakdown{SkillsMatch: 0, ExperienceMatch: 80, KeywordOverlap: 10}, []string{SuggestSkills, SuggestKeywords}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Suggestions(tt.in))
		})
	}
}
