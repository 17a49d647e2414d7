package similarity

import (
	"sort"

	"github.com/agenthands/resolve/internal/core/model"
)

const (
	DefaultMinThreshold  = 0.3
	DefaultMaxCandidates = 10

	typeScoreLabeled = 0.8
	scoreNeutral     = 0.5
)

// TypeScoreFunc scores type compatibility between a mention and a candidate.
type TypeScoreFunc func(mention *model.EntityMention, candidate model.EntityCandidate) float64

// ContextScoreFunc scores contextual fit of a candidate within a snapshot.
type ContextScoreFunc func(mention *model.EntityMention, candidate model.EntityCandidate, gctx *model.GraphContext) float64

// Scorer computes multi-factor confidence between mentions and candidates.
// Scoring is a pure function of its inputs: no hidden state, deterministic,
// safe to run across candidates in parallel.
type Scorer struct {
	MinThreshold  float64
	MaxCandidates int

	// TypeScore and ContextScore are pluggable; nil falls back to the
	// defaults (label presence check, neutral 0.5).
	TypeScore    TypeScoreFunc
	ContextScore ContextScoreFunc
}

func NewScorer() *Scorer {
	return &Scorer{
		MinThreshold:  DefaultMinThreshold,
		MaxCandidates: DefaultMaxCandidates,
	}
}

// Score computes the EntityConfidence for a (mention, candidate, context)
// triple using the fixed 0.4/0.3/0.2/0.1 weighting.
func (s *Scorer) Score(mention *model.EntityMention, candidate model.EntityCandidate, gctx *model.GraphContext) model.EntityConfidence {
	name := NameScore(mention.SurfaceForm, candidate.Name)
	typ := s.typeScore(mention, candidate)
	prop := s.propertyScore(mention, candidate)
	ctxScore := scoreNeutral
	if s.ContextScore != nil {
		ctxScore = s.ContextScore(mention, candidate, gctx)
	}
	return model.NewConfidence(name, typ, prop, ctxScore)
}

func (s *Scorer) typeScore(mention *model.EntityMention, candidate model.EntityCandidate) float64 {
	if s.TypeScore != nil {
		return s.TypeScore(mention, candidate)
	}
	// Placeholder for schema-aware type inference: any label at all is a
	// weak positive, absence is neutral.
	if candidate.Label != "" {
		return typeScoreLabeled
	}
	return scoreNeutral
}

func (s *Scorer) propertyScore(mention *model.EntityMention, candidate model.EntityCandidate) float64 {
	hints := ExtractHints(mention)
	if len(hints) == 0 {
		return scoreNeutral
	}

	matched := 0
	for _, key := range sortedHintKeys(hints) {
		want := Normalize(hints[key])
		if got, ok := candidate.Properties[key]; ok && Normalize(got.String()) == want {
			matched++
		}
	}
	return float64(matched) / float64(len(hints))
}

func sortedHintKeys(hints map[string]string) []string {
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ScoreMentionCandidates scores every candidate, overwrites Similarity with
// the computed overall, sorts descending (stable on the original order),
// drops candidates below MinThreshold and truncates to MaxCandidates.
func (s *Scorer) ScoreMentionCandidates(mention *model.EntityMention, candidates []model.EntityCandidate, gctx *model.GraphContext) []model.EntityCandidate {
	scored := make([]model.EntityCandidate, 0, len(candidates))
	for _, c := range candidates {
		conf := s.Score(mention, c, gctx)
		c.Similarity = conf.Overall
		scored = append(scored, c)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	filtered := scored[:0]
	for _, c := range scored {
		if c.Similarity >= s.MinThreshold {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) > s.MaxCandidates {
		filtered = filtered[:s.MaxCandidates]
	}

	out := make([]model.EntityCandidate, len(filtered))
	copy(out, filtered)
	return out
}
