package rank

import "math"

// CosineSimilarity computes the cosine of the angle between two sparse
// weight vectors. With non-negative weights the result is in [0, 1]. Either
// vector having zero magnitude yields 0.
func CosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64

	for tok, wa := range a {
		normA += wa * wa
		if wb, ok := b[tok]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
