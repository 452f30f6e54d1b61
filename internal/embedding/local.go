package embedding

import (
	"hash/fnv"
	"math"
	"strconv"
)

// localEmbed computes a deterministic hash-based unit vector for text,
// requiring no network. Each dimension is seeded from an FNV-1a hash of
// the text salted with the dimension index, so identical inputs always
// produce bitwise-identical output, matching the local-provider invariant
// from spec.md §8.
func localEmbed(text string, dim int) []float32 {
	vec := make([]float32, dim)

	for i := 0; i < dim; i++ {
		h := fnv.New64a()
		h.Write([]byte(text))
		h.Write([]byte("|"))
		h.Write([]byte(strconv.Itoa(i)))
		sum := h.Sum64()

		// map the 64-bit hash into [-1, 1]
		vec[i] = float32(sum%2000001)/1000000.0 - 1.0
	}

	return normalize(vec)
}

func normalize(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return vec
	}

	norm := float32(math.Sqrt(sumSquares))
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out
}
