//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// OpeningPrefix returns the first n whitespace-separated words of a bullet,
// lowercased with trailing punctuation stripped, for uniqueness comparisons.
func OpeningPrefix(text string, n int) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > n {
		words = words[:n]
	}
	for i, w := range words {
		words[i] = strings.TrimRight(w, ".,!?;:")
	}
	return strings.Join(words, " ")
}
