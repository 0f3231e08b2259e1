package core

import "math"

// NormalizeVector scales a vector to unit length in place and returns it.
// Similarity search uses dot products, which equal cosine similarity only
// for unit vectors. A zero vector is returned unchanged.
func NormalizeVector(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vec
	}
	norm := float32(1.0 / math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] *= norm
	}
	return vec
}
