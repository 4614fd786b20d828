package match

import (
	"strings"
	"unicode/utf8"
)

// FuzzyTitleMatch reports whether two section titles denote the same
// section despite wording differences. It tries, in order: exact equality
// after lowercasing and trimming; bidirectional token containment (which
// catches abbreviations like "Specs" vs "Specifications" and punctuation
// or word-order variance); and finally edit distance on the normalized
// strings, allowing maxDistance edits or 20% of the longer title,
// whichever is larger.
func FuzzyTitleMatch(title1, title2 string, maxDistance int) bool {
	norm1 := strings.ToLower(strings.TrimSpace(title1))
	norm2 := strings.ToLower(strings.TrimSpace(title2))

	if norm1 == norm2 {
		return true
	}

	words1 := strings.Fields(norm1)
	words2 := strings.Fields(norm2)
	if tokensContained(words1, words2) || tokensContained(words2, words1) {
		return true
	}

	distance := Levenshtein(norm1, norm2)
	maxLen := utf8.RuneCountInString(norm1)
	if n := utf8.RuneCountInString(norm2); n > maxLen {
		maxLen = n
	}
	threshold := max(maxDistance, (maxLen+4)/5)

	return distance <= threshold
}

// tokensContained reports whether every token in a finds some token in b
// that contains it, is contained by it, or shares a 4-character prefix
// when both tokens are at least 4 characters long.
func tokensContained(a, b []string) bool {
	for _, wa := range a {
		found := false
		for _, wb := range b {
			if strings.Contains(wb, wa) || strings.Contains(wa, wb) {
				found = true
				break
			}
			if len(wa) >= 4 && len(wb) >= 4 && wa[:4] == wb[:4] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
