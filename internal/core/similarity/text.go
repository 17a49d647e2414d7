package similarity

import (
	"strings"
	"unicode"
)

// Normalize lowercases, strips punctuation and collapses whitespace so that
// "John  Doe." and "john doe" compare equal.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SequenceRatio returns a similarity ratio in [0,1] computed as
// 2*M/(len(a)+len(b)) with M the length of the longest common subsequence.
// Both strings are compared as-is; callers normalize first.
func SequenceRatio(a, b string) float64 {
	if a == b {
		if len(a) == 0 {
			return 1.0
		}
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)

	// Two-row LCS table, same memory trick as the edit-distance helpers
	// elsewhere in the codebase.
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	matches := prev[len(rb)]
	return 2.0 * float64(matches) / float64(len(ra)+len(rb))
}

// TrigramSimilarity is Jaccard similarity over padded character trigrams.
// Used for the cheap similarity hints in graph context snapshots.
func TrigramSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == nb {
		if na == "" {
			return 0.0
		}
		return 1.0
	}

	ta := trigrams(na)
	tb := trigrams(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	intersection := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	return float64(intersection) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	padded := "  " + s + " "
	runes := []rune(padded)
	grams := make(map[string]struct{})
	for i := 0; i+3 <= len(runes); i++ {
		grams[string(runes[i:i+3])] = struct{}{}
	}
	return grams
}

// NameScore compares two names. Exact normalized match forces 1.0; substring
// containment floors the score at 0.8; otherwise the sequence ratio wins.
func NameScore(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0.0
	}
	if na == nb {
		return 1.0
	}

	ratio := SequenceRatio(na, nb)
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		if ratio < 0.8 {
			return 0.8
		}
	}
	return ratio
}
