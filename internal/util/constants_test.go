package util

import "testing"

func TestValidLawNumbers(t *testing.T) {
	cases := []struct {
		in   []int
		want int
	}{
		{[]int{1, 11, 17}, 3},
		{[]int{0, 18, -3}, 0},
		{[]int{5, 0, 12, 99}, 2},
		{nil, 0},
	}
	for _, c := range cases {
		got := ValidLawNumbers(c.in)
		if len(got) != c.want {
			t.Fatalf("ValidLawNumbers(%v) kept %d, want %d", c.in, len(got), c.want)
		}
		for _, n := range got {
			if n < MinLawNumber || n > MaxLawNumber {
				t.Fatalf("kept out-of-range law %d", n)
			}
		}
	}
}

func TestIsAllowedVideoExt(t *testing.T) {
	if !IsAllowedVideoExt(".mp4") {
		t.Fatal(".mp4 should be allowed")
	}
	if IsAllowedVideoExt(".exe") {
		t.Fatal(".exe should not be allowed")
	}
}

func TestLawNamesComplete(t *testing.T) {
	for n := MinLawNumber; n <= MaxLawNumber; n++ {
		if LawNames[n] == "" {
			t.Fatalf("law %d has no name", n)
		}
	}
}
