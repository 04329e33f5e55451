package reembed

import (
	"math"

	"github.com/poiesic/projectinbox/core"
)

// NormalizeVector scales v to unit length and returns a new vector.
// A zero vector stays zero.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}

	result := make([]float32, len(v))
	if sum == 0 {
		return result
	}

	inv := 1 / math.Sqrt(sum)
	for i, val := range v {
		result[i] = float32(float64(val) * inv)
	}
	return result
}

// IsStale reports whether record's vector was not computed from its current
// text by model, or does not fit an index of the given dimension.
func IsStale(record *core.ProjectRecord, model string, dimension int) bool {
	if len(record.Vector) != dimension {
		return true
	}
	return record.EmbeddingKey != core.EmbeddingKeyFor(model, record.Text())
}
