package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/agenthands/resolve/internal/core/dedupe"
	"github.com/agenthands/resolve/internal/core/graphctx"
	"github.com/agenthands/resolve/internal/core/model"
	"github.com/agenthands/resolve/internal/core/rules"
	"github.com/agenthands/resolve/internal/core/similarity"
	"github.com/agenthands/resolve/internal/driver"
)

const (
	DefaultAcceptThreshold = 0.6
	DefaultAskThreshold    = 0.3
)

// Resolver decides whether a mention refers to an existing graph element,
// is brand new, or needs human disambiguation.
type Resolver interface {
	FindCandidates(ctx context.Context, mention *model.EntityMention, threshold float64) ([]model.EntityCandidate, error)
	ResolveMention(ctx context.Context, text string, elementType model.ElementType) (*model.EntityResolution, error)
	ResolveMentions(ctx context.Context, texts []string) ([]*model.EntityResolution, error)
}

// EntityResolver is the default Resolver: candidate retrieval through the
// graph context provider and match rules, multi-factor scoring, then the
// threshold-based strategy decision.
type EntityResolver struct {
	Provider     *graphctx.Provider
	Scorer       *similarity.Scorer
	Rules        *rules.RuleSet
	Deduplicator *dedupe.Deduplicator

	// Best-candidate similarity above AcceptThreshold resolves to the
	// existing entity; between AskThreshold and AcceptThreshold routes to a
	// human; at or below AskThreshold a new entity is created.
	AcceptThreshold float64
	AskThreshold    float64
}

var _ Resolver = (*EntityResolver)(nil)

func NewEntityResolver(store driver.GraphStore) *EntityResolver {
	scorer := similarity.NewScorer()
	provider := graphctx.NewProvider(store)
	provider.Scorer = scorer

	return &EntityResolver{
		Provider:        provider,
		Scorer:          scorer,
		Rules:           rules.NewRuleSet(),
		Deduplicator:    dedupe.NewDeduplicator(),
		AcceptThreshold: DefaultAcceptThreshold,
		AskThreshold:    DefaultAskThreshold,
	}
}

// FindCandidates retrieves similar entities, shortlists them through the
// match rules and collapses duplicate clusters to their merged canonical
// candidates, preserving retrieval order.
func (r *EntityResolver) FindCandidates(ctx context.Context, mention *model.EntityMention, threshold float64) ([]model.EntityCandidate, error) {
	retrieved, err := r.Provider.SimilarEntities(ctx, mention, threshold)
	if err != nil {
		return nil, err
	}

	shortlisted := r.Rules.Shortlist(mention, retrieved)
	return r.collapseDuplicates(shortlisted)
}

func (r *EntityResolver) collapseDuplicates(candidates []model.EntityCandidate) ([]model.EntityCandidate, error) {
	clusters := r.Deduplicator.FindDuplicates(candidates, r.Deduplicator.Threshold)
	if len(clusters) == 0 {
		return candidates, nil
	}

	mergedByBase := make(map[string]model.EntityCandidate, len(clusters))
	clustered := make(map[string]bool)
	for _, cluster := range clusters {
		merged, err := r.Deduplicator.MergeEntities(cluster)
		if err != nil {
			return nil, err
		}
		mergedByBase[cluster[0].ID] = merged
		for _, c := range cluster[1:] {
			clustered[c.ID] = true
		}
	}

	var out []model.EntityCandidate
	for _, c := range candidates {
		if merged, ok := mergedByBase[c.ID]; ok {
			out = append(out, merged)
			delete(mergedByBase, c.ID)
			continue
		}
		if clustered[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// ResolveMention runs the full pipeline for one piece of text.
func (r *EntityResolver) ResolveMention(ctx context.Context, text string, elementType model.ElementType) (*model.EntityResolution, error) {
	mention, err := model.NewEntityMention(text, elementType)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, mention)
}

// Resolve decides the strategy for a prepared mention. The mention
// accumulates its scored candidates as a side effect.
func (r *EntityResolver) Resolve(ctx context.Context, mention *model.EntityMention) (*model.EntityResolution, error) {
	gctx, err := r.Provider.ContextForQuery(ctx, mention.SurfaceForm)
	if err != nil {
		return nil, err
	}

	candidates, err := r.FindCandidates(ctx, mention, r.Scorer.MinThreshold)
	if err != nil {
		return nil, err
	}

	scored := r.Scorer.ScoreMentionCandidates(mention, candidates, gctx)
	mention.Candidates = scored

	if len(scored) == 0 {
		return r.finish(mention, r.createNew(mention, "no candidates found"))
	}

	best := scored[0]
	switch {
	case best.Similarity > r.AcceptThreshold:
		resolution := &model.EntityResolution{
			Strategy: model.UseExisting,
			EntityID: &best.ID,
			// Auxiliary component scores are fixed constants, not re-derived
			// from the candidate's actual type/property match.
			Confidence: model.NewConfidence(best.Similarity, 0.9, 0.8, 0.7),
			Reasoning:  fmt.Sprintf("matched existing entity %q (similarity %.2f)", best.Name, best.Similarity),
			CreatedAt:  time.Now().UTC(),
		}
		return r.finish(mention, resolution)

	case best.Similarity > r.AskThreshold:
		resolution := &model.EntityResolution{
			Strategy:   model.AskUser,
			Confidence: model.NewConfidence(best.Similarity, 0.6, 0.5, 0.4),
			Reasoning:  fmt.Sprintf("ambiguous match for %q: best candidate %q at %.2f", mention.SurfaceForm, best.Name, best.Similarity),
			CreatedAt:  time.Now().UTC(),
		}
		return r.finish(mention, resolution)

	default:
		return r.finish(mention, r.createNew(mention, fmt.Sprintf("best candidate similarity %.2f too low", best.Similarity)))
	}
}

func (r *EntityResolver) createNew(mention *model.EntityMention, reason string) *model.EntityResolution {
	return &model.EntityResolution{
		Strategy:   model.CreateNew,
		Confidence: model.NewConfidence(0.1, 0.1, 0.1, 0.1),
		Reasoning:  fmt.Sprintf("creating new entity for %q: %s", mention.SurfaceForm, reason),
		CreatedAt:  time.Now().UTC(),
	}
}

func (r *EntityResolver) finish(mention *model.EntityMention, resolution *model.EntityResolution) (*model.EntityResolution, error) {
	if err := resolution.Validate(); err != nil {
		return nil, err
	}
	mention.Confidence = &resolution.Confidence
	if resolution.Strategy == model.UseExisting {
		mention.ResolvedID = resolution.EntityID
	}
	return resolution, nil
}

// ResolveMentions resolves each text independently. Output order matches
// input order regardless of completion order; a failed mention leaves a nil
// slot and its error is joined into the returned error without aborting the
// rest of the batch.
func (r *EntityResolver) ResolveMentions(ctx context.Context, texts []string) ([]*model.EntityResolution, error) {
	resolutions := make([]*model.EntityResolution, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			resolutions[i], errs[i] = r.ResolveMention(ctx, text, model.NodeReference)
		}(i, text)
	}
	wg.Wait()

	return resolutions, errors.Join(errs...)
}

// BuildAmbiguity materializes a pending disambiguation request for mentions
// that routed to ask_user. The question is assembled from the candidate
// sets; asking it is the caller's concern.
func (r *EntityResolver) BuildAmbiguity(mentions []model.EntityMention) (*model.AmbiguityResolution, error) {
	var parts []string
	for _, m := range mentions {
		names := make([]string, 0, len(m.Candidates))
		for _, c := range m.Candidates {
			names = append(names, fmt.Sprintf("%s (%s)", c.Name, c.ID))
		}
		parts = append(parts, fmt.Sprintf("%q could refer to: %s", m.SurfaceForm, strings.Join(names, ", ")))
	}
	question := fmt.Sprintf("Please disambiguate. %s", strings.Join(parts, "; "))

	return model.NewAmbiguityResolution(mentions, question)
}
