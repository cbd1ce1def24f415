package errors

import (
	"fmt"
	"strings"
)

// SuggestTag suggests a known record tag when an unknown one is found.
// Tags are matched case-sensitively, so a case-only difference is the most
// common mistake and is always suggested.
func SuggestTag(unknown string, validTags []string) string {
	if len(validTags) == 0 {
		return ""
	}

	for _, tag := range validTags {
		if strings.EqualFold(unknown, tag) {
			return fmt.Sprintf("Did you mean '%s'? Tags are case-sensitive", tag)
		}
	}

	minDistance := 1000
	var bestMatch string

	for _, tag := range validTags {
		dist := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(tag))
		if dist < minDistance {
			minDistance = dist
			bestMatch = tag
		}
	}

	// Only suggest if the distance is reasonable (< 3 edits)
	if minDistance < 3 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	return fmt.Sprintf("Valid tags: %s", strings.Join(validTags, ", "))
}

// SuggestValue suggests the closest allowed value for an enumerated field,
// or "" when nothing is close.
func SuggestValue(unknown string, valid []string) string {
	minDistance := 1000
	var bestMatch string

	for _, v := range valid {
		dist := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(v))
		if dist < minDistance {
			minDistance = dist
			bestMatch = v
		}
	}

	if bestMatch != "" && minDistance < 4 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
