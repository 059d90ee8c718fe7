// Copyright 2026 The Argsmith Authors
// SPDX-License-Identifier: Apache-2.0

package match

// suggest returns the candidate closest to unknown, or "" if nothing
// is within edit distance 3. That threshold catches the common typos
// (transpositions, dropped characters, extra characters) without
// suggesting unrelated names.
func suggest(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := 4

	for _, candidate := range candidates {
		distance := levenshtein(unknown, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}

	return bestName
}

// levenshtein computes the Levenshtein edit distance between two
// strings: the minimum number of single-character insertions,
// deletions, or substitutions to turn one into the other.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Single matrix row updated in place: O(min(m,n)) space.
	if len(a) > len(b) {
		a, b = b, a
	}

	previous := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current := make([]int, len(a)+1)
		current[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			deletion := previous[i] + 1
			insertion := current[i-1] + 1
			substitution := previous[i-1] + cost

			current[i] = min(deletion, insertion, substitution)
		}

		previous = current
	}

	return previous[len(a)]
}
