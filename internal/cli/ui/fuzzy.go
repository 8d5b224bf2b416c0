package ui

import (
	"sort"
	"strings"
)

// MaxSuggestions caps the names returned by Suggest.
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions candidates close to target,
// closest first. Comparison is case-insensitive and rune based; a candidate
// qualifies when its edit distance is at most a third of its length (and at
// least 1).
func Suggest(target string, candidates []string) []string {
	type scored struct {
		value    string
		distance int
	}

	needle := []rune(strings.ToLower(target))
	var matches []scored
	for _, candidate := range candidates {
		hay := []rune(strings.ToLower(candidate))
		limit := len(hay) / 3
		if limit < 1 {
			limit = 1
		}
		if d := EditDistance(needle, hay); d <= limit {
			matches = append(matches, scored{candidate, d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]string, 0, MaxSuggestions)
	for i := 0; i < len(matches) && i < MaxSuggestions; i++ {
		result = append(result, matches[i].value)
	}
	return result
}

// EditDistance is the Levenshtein distance between a and b, computed with a
// single rolling row.
func EditDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diagonal := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := diagonal + cost
			if row[j]+1 < next {
				next = row[j] + 1
			}
			if row[j-1]+1 < next {
				next = row[j-1] + 1
			}
			diagonal = row[j]
			row[j] = next
		}
	}
	return row[len(b)]
}
