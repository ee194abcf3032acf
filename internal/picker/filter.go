package picker

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter returns the names matching query in their original order. Fuzzy
// matches are preferred; when there are none, plain substring matches are
// used.
func Filter(names []string, query string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]string(nil), names...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]string, 0, len(matches))
		for idx, name := range names {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, name)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Exact returns the name equal to query. Without an exact match, a name
// equal ignoring case is returned only when it is the single such name.
func Exact(names []string, query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", false
	}
	var folded []string
	for _, name := range names {
		if name == trimmed {
			return name, true
		}
		if strings.EqualFold(name, trimmed) {
			folded = append(folded, name)
		}
	}
	if len(folded) == 1 {
		return folded[0], true
	}
	return "", false
}
