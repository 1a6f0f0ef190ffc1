package util

import "testing"

func TestTrimSpecIsNoop(t *testing.T) {
	cases := []struct {
		name     string
		spec     TrimSpec
		duration float64
		want     bool
	}{
		{"zero spec", TrimSpec{}, 30, true},
		{"end at duration", TrimSpec{EndSeconds: 30}, 30, true},
		{"end beyond duration", TrimSpec{EndSeconds: 45}, 30, true},
		{"nonzero start", TrimSpec{StartSeconds: 2}, 30, false},
		{"end inside", TrimSpec{EndSeconds: 20}, 30, false},
		{"unknown duration", TrimSpec{EndSeconds: 20}, 0, true},
	}
	for _, c := range cases {
		if got := c.spec.IsNoop(c.duration); got != c.want {
			t.Fatalf("%s: IsNoop=%v, want %v", c.name, got, c.want)
		}
	}
}
