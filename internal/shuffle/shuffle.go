// Package shuffle permutes option lists for quiz questions.
package shuffle

import (
	"math/rand/v2"
	"slices"
)

// maxAttempts bounds the re-shuffle loop for inputs whose leading elements
// are equal, where a different prefix can never be produced.
const maxAttempts = 100

// Shuffle returns a Fisher–Yates permutation of seq without touching seq.
// For len(seq) > 2 the result never starts with the same two elements as the
// input, so an ordering question always needs at least one move to solve.
// A nil rng uses the global source.
func Shuffle[T comparable](rng *rand.Rand, seq []T) []T {
	out := slices.Clone(seq)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		permute(rng, out)
		if len(out) <= 2 || out[0] != seq[0] || out[1] != seq[1] {
			return out
		}
	}
	return out
}

func permute[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s[i], s[j] = s[j], s[i]
	}
}
