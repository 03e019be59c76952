package services

import "math"

// CosineSimilarity computes the cosine of the angle between two vectors:
// dot product over the product of L2 norms, in [-1, 1]. Accumulation runs
// in float64 to limit rounding drift on long vectors.
//
// Nil vectors, mismatched lengths and zero-norm vectors score 0: "no
// similarity" rather than a fault, so a degenerate stored vector can never
// poison a query.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
