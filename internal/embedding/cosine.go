package embedding

import (
	"fmt"
	"math"
)

// Cosine computes the cosine similarity between two vectors of equal length.
// If either vector has zero norm, the similarity is 0 rather than NaN.
// Mismatched lengths are a data-corruption signal and are rejected instead of
// being zero-padded.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
