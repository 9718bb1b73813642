package command

import (
	"sort"
	"strings"
)

// maxSuggestions caps how many completions Suggest returns.
const maxSuggestions = 10

// Suggest returns up to ten synonym-table keys that start with partial,
// sorted alphabetically, for interactive completion.
//
// Postcondition: len(result) <= 10; result is sorted; empty partial yields nil.
func Suggest(partial string) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}

	var matches []string
	for key := range verbSynonyms {
		if strings.HasPrefix(key, partial) {
			matches = append(matches, key)
		}
	}
	for key := range directionShortcuts {
		if strings.HasPrefix(key, partial) {
			matches = append(matches, key)
		}
	}

	sort.Strings(matches)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}
