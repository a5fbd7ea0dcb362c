// Package fuzzy scores how similar two medicine names are.
package fuzzy

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Score returns a similarity in [0,100] between a and b, ignoring case.
// 100 means the lowercased strings are identical. The score is symmetric
// and decreases as the edit distance grows. A substitution counts as a
// single edit, so "napa" and "nape" score 88.
func Score(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 100
	}

	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	score := int(math.Round(100 * float64(total-dist) / float64(total)))

	// Rounding must never turn a near miss into an exact match.
	if score >= 100 {
		return 99
	}
	if score < 0 {
		return 0
	}
	return score
}
