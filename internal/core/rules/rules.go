package rules

import (
	"strings"

	"github.com/agenthands/resolve/internal/core/model"
	"github.com/agenthands/resolve/internal/core/similarity"
)

// Rule names, also the keys of the per-rule threshold map.
const (
	RuleExactKey          = "exact_key"
	RuleSimilarName       = "similar_name"
	RulePropertyOverlap   = "property_overlap"
	RuleTypeCompatibility = "type_compatibility"
)

// identifierKeys are the property names treated as identifier-like for the
// exact-key rule.
var identifierKeys = []string{"email", "key", "username", "login", "identifier", "id"}

// RuleSet evaluates candidates against the ordered matching rules. Rules run
// in a fixed order per candidate and the first rule meeting its threshold
// accepts the candidate outright; the remaining rules are skipped. This is
// first-match-wins, not best-match.
type RuleSet struct {
	Thresholds map[string]float64
}

func NewRuleSet() *RuleSet {
	return &RuleSet{
		Thresholds: map[string]float64{
			RuleSimilarName:       0.8,
			RulePropertyOverlap:   0.6,
			RuleTypeCompatibility: 0.5,
		},
	}
}

// Accepts evaluates the ordered rules for one candidate. It returns the name
// of the accepting rule, or false when every rule falls short.
func (r *RuleSet) Accepts(mention *model.EntityMention, candidate model.EntityCandidate) (string, bool) {
	if exactKeyMatch(mention, candidate) {
		return RuleExactKey, true
	}
	if similarity.NameScore(mention.SurfaceForm, candidate.Name) >= r.Thresholds[RuleSimilarName] {
		return RuleSimilarName, true
	}
	if propertyOverlap(mention, candidate) >= r.Thresholds[RulePropertyOverlap] {
		return RulePropertyOverlap, true
	}
	if typeCompatibility(mention, candidate) >= r.Thresholds[RuleTypeCompatibility] {
		return RuleTypeCompatibility, true
	}
	return "", false
}

// Shortlist filters candidates to those accepted by some rule, preserving
// input order.
func (r *RuleSet) Shortlist(mention *model.EntityMention, candidates []model.EntityCandidate) []model.EntityCandidate {
	var accepted []model.EntityCandidate
	for _, c := range candidates {
		if _, ok := r.Accepts(mention, c); ok {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

// exactKeyMatch accepts when the mention text equals the candidate id or any
// identifier-like property, case-insensitively after trimming.
func exactKeyMatch(mention *model.EntityMention, candidate model.EntityCandidate) bool {
	text := strings.TrimSpace(mention.SurfaceForm)
	if strings.EqualFold(text, strings.TrimSpace(candidate.ID)) {
		return true
	}
	for _, key := range identifierKeys {
		if v, ok := candidate.Properties[key]; ok && !v.IsNull() {
			if strings.EqualFold(text, strings.TrimSpace(v.String())) {
				return true
			}
		}
	}
	return false
}

// propertyOverlap is the fraction of mention-context keys whose value matches
// the candidate's property of the same name, exactly or by substring,
// case-insensitively. No context keys means no overlap evidence.
func propertyOverlap(mention *model.EntityMention, candidate model.EntityCandidate) float64 {
	if len(mention.Context) == 0 {
		return 0.0
	}
	matched := 0
	for _, key := range model.SortedKeys(mention.Context) {
		want := strings.ToLower(strings.TrimSpace(mention.Context[key].String()))
		got, ok := candidate.Properties[key]
		if !ok || want == "" {
			continue
		}
		have := strings.ToLower(strings.TrimSpace(got.String()))
		if have == want || strings.Contains(have, want) || strings.Contains(want, have) {
			matched++
		}
	}
	return float64(matched) / float64(len(mention.Context))
}

// typeCompatibility measures overlap between the mention's declared element
// type and the candidate's label. Absent type information scores a neutral
// 0.5, which meets the default threshold: absence of type information is
// treated as "not incompatible".
func typeCompatibility(mention *model.EntityMention, candidate model.EntityCandidate) float64 {
	mt := strings.ToLower(strings.TrimSpace(string(mention.ElementType)))
	label := strings.ToLower(strings.TrimSpace(candidate.Label))
	if mt == "" || label == "" {
		return 0.5
	}
	if strings.Contains(mt, label) || strings.Contains(label, mt) {
		return 1.0
	}
	return 0.0
}
