package util

import "math/rand"

// Shuffle permutes a copy of items uniformly (Fisher-Yates). The input slice
// is left untouched.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// SampleIDs draws up to n items uniformly without replacement: shuffle, then
// take a prefix. Deliberately in-memory rather than ORDER BY RAND() so the
// behavior is portable and testable. Returns all items when n >= len(ids).
func SampleIDs[T any](ids []T, n int, rng *rand.Rand) []T {
	if n <= 0 {
		return []T{}
	}
	shuffled := Shuffle(ids, rng)
	if n >= len(shuffled) {
		return shuffled
	}
	return shuffled[:n]
}
