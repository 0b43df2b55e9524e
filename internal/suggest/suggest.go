// Package suggest proposes corrections for misspelled directive options,
// representations and YAML keywords.
package suggest

import (
	"fmt"
	"strings"
)

// Distance computes the Levenshtein distance between two strings, counted in
// runes: the minimum number of single-rune insertions, deletions or
// substitutions turning one into the other.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// Keep ra the shorter one; only two rows of the matrix are needed.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Closest returns the candidate nearest to name, ignoring case. Candidates
// further than a third of the longer length are not considered close.
// Ties keep the earlier candidate.
func Closest(name string, candidates ...string) (string, bool) {
	folded := strings.ToLower(name)

	best, bestDist := "", -1

	for _, c := range candidates {
		d := Distance(folded, strings.ToLower(c))
		if d > max(len(folded), len(c))/3 {
			continue
		}

		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist >= 0
}

// Hint returns ` (did you mean "x"?)` for the closest candidate, or "".
func Hint(name string, candidates ...string) string {
	c, ok := Closest(name, candidates...)
	if !ok || c == name {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", c)
}
