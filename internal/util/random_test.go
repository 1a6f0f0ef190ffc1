package util

import (
	"math/rand"
	"testing"
)

func TestSampleIDsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ids := []string{"a", "b", "c", "d", "e"}

	cases := []struct {
		n    int
		want int
	}{
		{3, 3},
		{5, 5},
		{9, 5}, // n beyond the pool returns the whole pool
		{0, 0},
		{-2, 0},
	}
	for _, c := range cases {
		got := SampleIDs(ids, c.n, rng)
		if len(got) != c.want {
			t.Fatalf("SampleIDs(n=%d) returned %d items, want %d", c.n, len(got), c.want)
		}
	}
}

func TestSampleIDsSubsetNoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}

	for trial := 0; trial < 50; trial++ {
		got := SampleIDs(ids, 4, rng)
		seen := make(map[string]bool, len(got))
		pool := make(map[string]bool, len(ids))
		for _, id := range ids {
			pool[id] = true
		}
		for _, id := range got {
			if !pool[id] {
				t.Fatalf("sampled %q not in the pool", id)
			}
			if seen[id] {
				t.Fatalf("sampled %q twice", id)
			}
			seen[id] = true
		}
	}
}

func TestSampleIDsDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ids := []string{"a", "b", "c", "d"}
	SampleIDs(ids, 2, rng)

	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("input mutated at %d: got %q want %q", i, ids[i], want[i])
		}
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := []int{1, 1, 2, 3, 5, 8, 13}

	out := Shuffle(in, rng)
	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}

	counts := make(map[int]int)
	for _, v := range in {
		counts[v]++
	}
	for _, v := range out {
		counts[v]--
	}
	for v, n := range counts {
		if n != 0 {
			t.Fatalf("multiset not preserved for %d (delta %d)", v, n)
		}
	}
}

func TestShuffleEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	if got := Shuffle([]string{}, rng); len(got) != 0 {
		t.Fatalf("shuffle of empty slice returned %d items", len(got))
	}
}
