package catalog

// Levenshtein computes the edit distance between two strings using two
// rolling rows.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Ensure a is the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity normalizes edit distance into [0,1]; 1.0 means identical.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

// closestName returns the candidate with the highest similarity to the
// input, or "" when nothing reaches the cutoff. At most one candidate is
// ever returned; ties keep the earlier (sorted) candidate.
func closestName(input string, candidates []string, cutoff float64) string {
	best := ""
	bestScore := 0.0
	for _, cand := range candidates {
		score := Similarity(input, cand)
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	if bestScore < cutoff {
		return ""
	}
	return best
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
