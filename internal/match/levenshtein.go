package match

// Levenshtein computes the edit distance between two strings with unit
// costs for insertion, deletion, and substitution, over Unicode code
// points. Case folding is the caller's job. Runs in O(len(a)*len(b)) time
// with two rolling rows, so memory stays O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Keep the shorter string on the column axis.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range ra {
		curr[0] = i + 1
		for j, cb := range rb {
			cost := 0
			if ca != cb {
				cost = 1
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
