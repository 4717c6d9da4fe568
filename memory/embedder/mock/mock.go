// Package mock provides a deterministic embedder for tests. Vectors
// are derived from a hash of the input text, so equal texts always
// embed identically and no model files are needed.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Dimensions matches all-MiniLM-L6-v2 so the mock can stand in for
// the onnx embedder without reconfiguring collections.
const dimensions = 384

// Embedder hashes text into a unit vector.
type Embedder struct{}

// New returns a mock Embedder.
func New() *Embedder {
	return &Embedder{}
}

// Embed derives a pseudo-random unit vector seeded by the text hash.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))

	vec := make([]float32, dimensions)
	seed := h.Sum64()
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}
	return unit(vec), nil
}

// Dimensions returns the embedding size.
func (e *Embedder) Dimensions() int {
	return dimensions
}

func unit(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = float32(math.Sqrt(float64(norm)))
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}
