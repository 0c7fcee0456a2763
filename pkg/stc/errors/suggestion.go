package errors

import (
	"fmt"
	"strings"
)

// SuggestKeyword proposes the closest valid keyword for an unknown token.
// Case-only mismatches are always suggested.
func SuggestKeyword(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string
	for _, kw := range valid {
		if strings.EqualFold(unknown, kw) {
			return fmt.Sprintf("Did you mean '%s'?", kw)
		}
		dist := levenshteinDistance(unknown, kw)
		if dist < minDistance {
			minDistance = dist
			bestMatch = kw
		}
	}

	if minDistance <= 3 && minDistance < len(unknown) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	if len(valid) > 6 {
		return fmt.Sprintf("Expected one of: %s, ...", strings.Join(valid[:6], ", "))
	}
	return fmt.Sprintf("Expected one of: %s", strings.Join(valid, ", "))
}

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
