package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "john doe", Normalize("  John   Doe. "))
	assert.Equal(t, "acme 42", Normalize("ACME-42"))
	assert.Equal(t, "", Normalize(" ,.! "))
}

func TestNameScore_IdentityIsExactlyOne(t *testing.T) {
	for _, s := range []string{"John Doe", "ACME", "jira-123", "a"} {
		assert.Equal(t, 1.0, NameScore(s, s))
	}
}

func TestNameScore_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, 1.0, NameScore("John  Doe", "john doe"))
}

func TestNameScore_SubstringFloor(t *testing.T) {
	// "Doe" is a tiny substring of "Johnathan  Doe"; the raw ratio is far
	// below 0.8, so the floor applies.
	score := NameScore("Doe", "Johnathan Doe")
	assert.GreaterOrEqual(t, score, 0.8)

	// When the ratio already beats the floor, the ratio wins.
	score = NameScore("John Doe", "John Doe Jr")
	assert.GreaterOrEqual(t, score, 0.8)
}

func TestSequenceRatio_JonVsJohn(t *testing.T) {
	// The duplicate-detection policy case: "Jon Doe" vs "John Doe" should
	// land above the 0.8 clustering threshold.
	ratio := SequenceRatio(Normalize("Jon Doe"), Normalize("John Doe"))
	assert.Greater(t, ratio, 0.9)
}

func TestSequenceRatio_Disjoint(t *testing.T) {
	assert.Less(t, SequenceRatio("xyz", "abc"), 0.2)
	assert.Equal(t, 0.0, SequenceRatio("", "abc"))
}

func TestTrigramSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, TrigramSimilarity("ACME Corp", "acme corp"))
	assert.Greater(t, TrigramSimilarity("John Doe", "Jon Doe"), 0.3)
	assert.Equal(t, 0.0, TrigramSimilarity("John", ""))
	low := TrigramSimilarity("John Doe", "Quarterly Report")
	assert.Less(t, low, 0.1)
}
