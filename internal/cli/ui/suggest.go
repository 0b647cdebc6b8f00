package ui

import (
	"sort"
	"strings"
)

// maxSuggestDistance bounds the edit distance of a suggestion
const maxSuggestDistance = 3

// Suggest returns up to limit candidates close to target, closest first.
// Matching ignores case; ties keep candidate order.
func Suggest(target string, candidates []string, limit int) []string {
	type match struct {
		value    string
		distance int
	}

	lower := strings.ToLower(target)
	var matches []match
	for _, c := range candidates {
		if d := editDistance(lower, strings.ToLower(c)); d <= maxSuggestDistance {
			matches = append(matches, match{value: c, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

// editDistance is the Levenshtein distance between a and b, over runes
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
