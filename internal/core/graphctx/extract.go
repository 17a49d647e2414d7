package graphctx

import (
	"regexp"
	"strings"
)

// Entity-name token patterns, ordered so ticket ids win over their acronym
// prefix. One pattern table, no module state.
var tokenPattern = regexp.MustCompile(`[A-Z][A-Z0-9]+-[0-9]+|[A-Z]{2,}|[A-Z][a-z]+`)

// ExtractEntityTokens harvests candidate entity-name tokens from free text:
// capitalized words, all-caps acronyms and WORD-NUMBER ticket-style ids.
// Tokens are deduplicated case-insensitively, first-seen order preserved.
func ExtractEntityTokens(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	var tokens []string
	for _, m := range matches {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		tokens = append(tokens, m)
	}
	return tokens
}
