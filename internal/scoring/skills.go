package scoring

import (
	"math"
	"regexp"
	"strings"
)

// Skills is the fixed technical vocabulary recognised by ExtractSkills.
var Skills = []string{
	"JavaScript", "React", "Node.js", "TypeScript", "Python",
	"SQL", "Docker", "AWS", "Tailwind", "Figma", "Git",
}

var skillPattern = compileSkillPattern(Skills)

func compileSkillPattern(skills []string) *regexp.Regexp {
	alts := make([]string, len(skills))
	for i, s := range skills {
		alts[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(alts, "|") + `)\b`)
}

// ExtractSkills returns the lowercased, deduplicated vocabulary skills found
// in text, in order of first occurrence.
func ExtractSkills(text string) []string {
	matches := skillPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		k := strings.ToLower(m)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// MatchSkills returns the share (0-100) of the job's skills that the resume
// also mentions. A job mentioning none of the vocabulary scores 100.
func MatchSkills(resumeText, jobText string) int {
	jobSkills := ExtractSkills(jobText)
	resume := make(map[string]struct{})
	for _, s := range ExtractSkills(resumeText) {
		resume[s] = struct{}{}
	}
	matched := 0
	for _, s := range jobSkills {
		if _, ok := resume[s]; ok {
			matched++
		}
	}
	return percent(matched, len(jobSkills))
}

// percent is round(100*part/whole) with an empty whole treated as a full match.
func percent(part, whole int) int {
	if whole == 0 {
		return 100
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
