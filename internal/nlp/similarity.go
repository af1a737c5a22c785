package nlp

import "math"

// Cosine returns the cosine similarity of two vectors clamped to [0, 1].
// Vectors of different length or zero norm yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim))
}

// Coverage returns the share of query keywords present in candidate.
func Coverage(query, candidate map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for k := range query {
		if _, ok := candidate[k]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}
