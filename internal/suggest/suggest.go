// Package suggest finds the closest known token for a rejected user input.
package suggest

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Closest returns the candidate that best matches input, or "" when nothing
// resembles it. Matching is case-insensitive and tries both directions so
// that abbreviations ("rect") and over-long inputs ("pencils") are caught.
func Closest(input string, candidates []string) string {
	input = strings.TrimSpace(input)
	if input == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(input, candidates)
	if len(ranks) == 0 {
		for _, c := range candidates {
			if fuzzy.MatchNormalizedFold(c, input) {
				return c
			}
		}
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// Hint formats a " (did you mean ...?)" suffix for error messages.
func Hint(input string, candidates []string) string {
	if c := Closest(input, candidates); c != "" {
		return " (did you mean " + strings.ToLower(c) + "?)"
	}
	return ""
}
