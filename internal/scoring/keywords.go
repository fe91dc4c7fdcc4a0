// Package scoring implements the rule-based resume/job matchers and the
// cosine similarity used for the overall fit score.
//
// Everything here is pure and CPU-only. The vocabularies are package-level
// read-only data and are safe to share across goroutines.
package scoring

import (
	"strings"
	"unicode"
)

// minKeywordLen is the shortest token kept by ExtractKeywords.
const minKeywordLen = 3

// ExtractKeywords lowercases text, drops every character outside
// [a-z0-9] and whitespace, splits on whitespace runs and discards tokens
// shorter than three characters or present in the stopword set.
// Tokens are not deduplicated.
func ExtractKeywords(text string) []string {
	if text == "" {
		return []string{}
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case isSpace(r):
			return ' '
		default:
			return -1
		}
	}, strings.ToLower(text))

	fields := strings.Fields(cleaned)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minKeywordLen {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// isSpace reports whether r is whitespace in the sense used for splitting
// resume and job text: ASCII whitespace including vertical tab, the Unicode
// space separators (no-break space among them), the line and paragraph
// separators and the byte order mark. U+0085 is not whitespace here.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return r > unicode.MaxASCII && unicode.Is(unicode.Zs, r)
}

// normalizeSpace rewrites every isSpace rune to an ASCII space so that
// regular expressions using \s see the same separators ExtractKeywords does.
func normalizeSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return ' '
		}
		return r
	}, text)
}

// KeywordOverlap returns the share (0-100) of job tokens that also occur in
// the resume tokens. Job tokens are counted with repetition, so a word the
// posting repeats weighs more. An empty job token list scores 100.
func KeywordOverlap(resumeKeywords, jobKeywords []string) int {
	resume := make(map[string]struct{}, len(resumeKeywords))
	for _, k := range resumeKeywords {
		resume[k] = struct{}{}
	}
	matched := 0
	for _, k := range jobKeywords {
		if _, ok := resume[k]; ok {
			matched++
		}
	}
	return percent(matched, len(jobKeywords))
}
