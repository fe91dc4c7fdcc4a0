package scoring

import (
	"math"

	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// CosineSimilarity returns dot(a,b)/(|a||b|) in [-1,1]. A zero-norm vector
// yields 0. Vectors of different length fail with domain.ErrDimensionMismatch.
func CosineSimilarity(a, b domain.EmbeddingVector) (float64, error) {
	if len(a) != len(b) {
		return 0, &domain.DimensionError{Left: len(a), Right: len(b)}
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// ScoreFromSimilarity scales a cosine similarity to a rounded percentage.
// Negative similarity stays negative unless clamp is set, in which case the
// result is limited to [0,100].
func ScoreFromSimilarity(sim float64, clamp bool) int {
	score := int(math.Round(sim * 100))
	if clamp {
		score = max(0, min(score, 100))
	}
	return score
}
