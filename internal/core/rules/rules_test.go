package rules

import (
	"testing"

	"github.com/agenthands/resolve/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mention(t *testing.T, surface string) *model.EntityMention {
	t.Helper()
	m, err := model.NewEntityMention(surface, model.NodeReference)
	require.NoError(t, err)
	return m
}

func TestExactKey_MatchesEmailPropertyRegardlessOfName(t *testing.T) {
	// The name "J. Doe" is nothing like the mention text; the email property
	// alone accepts.
	r := NewRuleSet()
	m := mention(t, "jane@example.com")
	c := model.EntityCandidate{
		ID:   "n1",
		Name: "J. Doe",
		Properties: model.Properties{
			"email": model.StringValue("JANE@EXAMPLE.COM"),
		},
	}

	rule, ok := r.Accepts(m, c)
	assert.True(t, ok)
	assert.Equal(t, RuleExactKey, rule)
}

func TestExactKey_MatchesCandidateID(t *testing.T) {
	r := NewRuleSet()
	m := mention(t, "node-42")
	c := model.EntityCandidate{ID: "NODE-42", Name: "whatever"}

	rule, ok := r.Accepts(m, c)
	assert.True(t, ok)
	assert.Equal(t, RuleExactKey, rule)
}

func TestSimilarName_AcceptsAboveThreshold(t *testing.T) {
	r := NewRuleSet()
	m := mention(t, "Jon Doe")
	c := model.EntityCandidate{ID: "n1", Name: "John Doe"}

	rule, ok := r.Accepts(m, c)
	assert.True(t, ok)
	assert.Equal(t, RuleSimilarName, rule)
}

func TestPropertyOverlap(t *testing.T) {
	r := NewRuleSet()
	m := mention(t, "the deploy thing")
	m.Context["team"] = model.StringValue("platform")
	m.Context["repo"] = model.StringValue("deploy-tool")

	c := model.EntityCandidate{
		ID:   "n1",
		Name: "Deployment Tooling",
		Properties: model.Properties{
			"team": model.StringValue("Platform"),
			"repo": model.StringValue("deploy-tools"), // substring match
		},
	}

	rule, ok := r.Accepts(m, c)
	assert.True(t, ok)
	assert.Equal(t, RulePropertyOverlap, rule)
}

func TestTypeCompatibility_NeutralWhenLabelAbsent(t *testing.T) {
	// No earlier rule fires; the unlabeled candidate still passes rule 4
	// because missing type info is "not incompatible" (documented behavior).
	r := NewRuleSet()
	m := mention(t, "zzzz")
	c := model.EntityCandidate{ID: "n1", Name: "aaaa"}

	rule, ok := r.Accepts(m, c)
	assert.True(t, ok)
	assert.Equal(t, RuleTypeCompatibility, rule)
}

func TestTypeCompatibility_RejectsIncompatibleLabel(t *testing.T) {
	r := NewRuleSet()
	m := mention(t, "zzzz")
	c := model.EntityCandidate{ID: "n1", Name: "aaaa", Label: "Invoice"}

	_, ok := r.Accepts(m, c)
	assert.False(t, ok)
}

func TestFirstMatchWins_ExactKeyShortCircuits(t *testing.T) {
	// Candidate matches both exact-key and similar-name; exact-key reports
	// because rules run in fixed order.
	r := NewRuleSet()
	m := mention(t, "PROJ-42")
	c := model.EntityCandidate{
		ID:         "n1",
		Name:       "PROJ-42",
		Properties: model.Properties{"key": model.StringValue("proj-42")},
	}

	rule, ok := r.Accepts(m, c)
	assert.True(t, ok)
	assert.Equal(t, RuleExactKey, rule)
}

func TestShortlist_PreservesOrder(t *testing.T) {
	r := NewRuleSet()
	m := mention(t, "John Doe")
	candidates := []model.EntityCandidate{
		{ID: "n1", Name: "John Doe"},
		{ID: "n2", Name: "Quarterly Report", Label: "Document"},
		{ID: "n3", Name: "Jon Doe"},
	}

	out := r.Shortlist(m, candidates)
	require.Len(t, out, 2)
	assert.Equal(t, "n1", out[0].ID)
	assert.Equal(t, "n3", out[1].ID)
}

func TestDetermineMergeStrategy(t *testing.T) {
	s := DetermineMergeStrategy(model.EntityCandidate{}, model.EntityCandidate{})
	assert.Equal(t, PreserveMostComplete, s)
}

func TestResolvePropertyConflict_Identifiers(t *testing.T) {
	// Equal after normalization collapses to the first value.
	v := ResolvePropertyConflict("email", model.StringValue("Jane@Example.com"), model.StringValue("jane@example.com"))
	assert.Equal(t, "Jane@Example.com", v.String())

	// Textually different identifiers: first wins.
	v = ResolvePropertyConflict("email", model.StringValue("a@x.com"), model.StringValue("b@x.com"))
	assert.Equal(t, "a@x.com", v.String())
}

func TestResolvePropertyConflict_LongerWins(t *testing.T) {
	v := ResolvePropertyConflict("title", model.StringValue("Eng"), model.StringValue("Engineering Manager"))
	assert.Equal(t, "Engineering Manager", v.String())

	// Tie keeps the first.
	v = ResolvePropertyConflict("title", model.StringValue("abc"), model.StringValue("xyz"))
	assert.Equal(t, "abc", v.String())
}
