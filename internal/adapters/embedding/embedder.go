// Package embedding implements a deterministic hashed bag-of-words
// embedder standing in for a pre-trained sentence embedder. No such
// pre-trained embedding SDK exists in the reference corpus (see
// DESIGN.md); this is one of the two deliberate stdlib-only leaves.
package embedding

import (
	"hash/fnv"
	"math"
	"strings"
)

const defaultDim = 384

// Embedder implements ports.Embedder. It hashes each token into one of Dim
// buckets and accumulates a per-bucket count, then L2-normalizes — the
// "hashing trick" bag-of-words embedding, deterministic for identical
// input text.
type Embedder struct {
	dim int
}

func New() *Embedder {
	return &Embedder{dim: defaultDim}
}

func (e *Embedder) Dim() int {
	return e.dim
}

func (e *Embedder) Embed(text string) ([]float64, error) {
	vec := make([]float64, e.dim)
	words := strings.Fields(strings.ToLower(text))
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		bucket := int(h.Sum32()) % e.dim
		if bucket < 0 {
			bucket += e.dim
		}
		vec[bucket]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}
