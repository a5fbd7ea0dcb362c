package fuzzy

import (
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "identical", a: "Napa", b: "Napa", want: 100},
		{name: "case insensitive", a: "NAPA", b: "napa", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "empty vs word", a: "", b: "napa", want: 0},
		{name: "word vs empty", a: "napa", b: "", want: 0},
		{name: "one substitution", a: "napa", b: "nape", want: 88},
		{name: "suffix added", a: "napa", b: "napa extra", want: 57},
		{name: "completely different", a: "abc", b: "xyz", want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScore_AgainstDefaultThreshold(t *testing.T) {
	t.Parallel()

	const threshold = 80
	if got := Score("napa", "nape"); got < threshold {
		t.Errorf("one substitution on a short name should pass %d, got %d", threshold, got)
	}
	if got := Score("napa", "nabe"); got >= threshold {
		t.Errorf("two substitutions on a short name should fail %d, got %d", threshold, got)
	}
	if got := Score("abc", "xyz"); got >= threshold {
		t.Errorf("unrelated names should fail %d, got %d", threshold, got)
	}
}

func TestScore_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"paracetamol", "paracetamole"},
		{"Napa", "Napa Extra"},
		{"sergel", "seclo"},
		{"", "x"},
	}
	for _, p := range pairs {
		if ab, ba := Score(p[0], p[1]), Score(p[1], p[0]); ab != ba {
			t.Errorf("Score not symmetric for %q/%q: %d vs %d", p[0], p[1], ab, ba)
		}
	}
}

func TestScore_NearMissNeverPerfect(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 300)
	if got := Score(long, long+"b"); got != 99 {
		t.Errorf("one edit on a long name: got %d, want 99", got)
	}
}

func TestScore_MonotonicInEditDistance(t *testing.T) {
	t.Parallel()

	base := "paracetamol"
	variants := []string{"paracetamol", "paracetamox", "paracetamxx", "paracetaxxx", "paracetxxxx"}

	prev := 101
	for _, v := range variants {
		got := Score(base, v)
		if got > prev {
			t.Errorf("score increased with more edits: %q -> %d (prev %d)", v, got, prev)
		}
		prev = got
	}
}
