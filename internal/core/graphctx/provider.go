package graphctx

import (
	"context"
	"sort"

	"github.com/agenthands/resolve/internal/core/model"
	"github.com/agenthands/resolve/internal/core/similarity"
	"github.com/agenthands/resolve/internal/driver"
)

const (
	DefaultMaxDepth  = 2
	DefaultMaxNodes  = 100
	DefaultPageLimit = 1000
	DefaultHintFloor = 0.1
)

// Provider extracts bounded, read-only graph snapshots for resolution
// requests. Result-set caps are enforced here, before any quadratic work
// runs downstream.
type Provider struct {
	Store driver.GraphStore

	// Scorer, when set, is used by SimilarEntities; otherwise a plain
	// sequence-similarity ratio is used.
	Scorer *similarity.Scorer

	MaxDepth  int
	MaxNodes  int
	PageLimit int
	HintFloor float64
}

func NewProvider(store driver.GraphStore) *Provider {
	return &Provider{
		Store:     store,
		MaxDepth:  DefaultMaxDepth,
		MaxNodes:  DefaultMaxNodes,
		PageLimit: DefaultPageLimit,
		HintFloor: DefaultHintFloor,
	}
}

// ContextForQuery harvests entity-name tokens from the text, expands each
// matching node to its bounded neighborhood and aggregates one snapshot with
// per-token similarity hints.
func (p *Provider) ContextForQuery(ctx context.Context, text string) (*model.GraphContext, error) {
	tokens := ExtractEntityTokens(text)

	agg := newAggregator(p.MaxNodes)
	for _, token := range tokens {
		found, err := p.Store.FindNodesByName(ctx, token)
		if err != nil {
			return nil, err
		}
		for _, n := range found {
			nodes, edges, err := p.Store.SubgraphAroundNode(ctx, n.ID, p.MaxDepth, p.MaxNodes)
			if err != nil {
				return nil, err
			}
			agg.add(nodes, edges)
		}
	}

	gctx := agg.context()
	p.fillSchema(ctx, gctx)

	gctx.SimilarityHints = make(map[string][]model.SimilarityHint, len(tokens))
	for _, token := range tokens {
		if hints := p.hintsFor(token, gctx.Nodes); len(hints) > 0 {
			gctx.SimilarityHints[token] = hints
		}
	}

	return gctx, nil
}

// ContextForEntities expands the named entities with explicit depth and node
// caps. No token harvesting happens here.
func (p *Provider) ContextForEntities(ctx context.Context, names []string, maxDepth, maxNodes int) (*model.GraphContext, error) {
	if maxDepth <= 0 {
		maxDepth = p.MaxDepth
	}
	if maxNodes <= 0 {
		maxNodes = p.MaxNodes
	}

	agg := newAggregator(maxNodes)
	for _, name := range names {
		found, err := p.Store.FindNodesByName(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, n := range found {
			nodes, edges, err := p.Store.SubgraphAroundNode(ctx, n.ID, maxDepth, maxNodes)
			if err != nil {
				return nil, err
			}
			agg.add(nodes, edges)
		}
	}

	gctx := agg.context()
	p.fillSchema(ctx, gctx)
	return gctx, nil
}

// ContextAroundNode is the single-node neighborhood snapshot.
func (p *Provider) ContextAroundNode(ctx context.Context, nodeID string, maxDepth int) (*model.GraphContext, error) {
	if maxDepth <= 0 {
		maxDepth = p.MaxDepth
	}

	nodes, edges, err := p.Store.SubgraphAroundNode(ctx, nodeID, maxDepth, p.MaxNodes)
	if err != nil {
		return nil, err
	}

	agg := newAggregator(p.MaxNodes)
	agg.add(nodes, edges)
	gctx := agg.context()
	p.fillSchema(ctx, gctx)
	return gctx, nil
}

// SimilarEntities retrieves a bounded page of graph nodes and scores each as
// a candidate for the mention, filtered by threshold and sorted descending
// with candidate id as the tie-break.
func (p *Provider) SimilarEntities(ctx context.Context, mention *model.EntityMention, threshold float64) ([]model.EntityCandidate, error) {
	page, err := p.Store.AllNodes(ctx, p.PageLimit)
	if err != nil {
		return nil, err
	}

	var candidates []model.EntityCandidate
	for _, n := range page {
		c := model.EntityCandidate{
			ID:         n.ID,
			Name:       n.DisplayName(),
			Label:      n.Label,
			Properties: n.Properties,
			Context:    model.Properties{},
		}

		if p.Scorer != nil {
			c.Similarity = p.Scorer.Score(mention, c, nil).Overall
		} else {
			c.Similarity = similarity.SequenceRatio(
				similarity.Normalize(mention.SurfaceForm),
				similarity.Normalize(c.Name),
			)
		}

		if c.Similarity >= threshold {
			candidates = append(candidates, c)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].ID < candidates[j].ID
	})

	return candidates, nil
}

// fillSchema attaches label and relationship-type metadata. Introspection
// failures degrade to empty schema info; context must never be fatal.
func (p *Provider) fillSchema(ctx context.Context, gctx *model.GraphContext) {
	if labels, err := p.Store.AllNodeLabels(ctx); err == nil {
		gctx.Labels = labels
	}
	if types, err := p.Store.AllRelationshipTypes(ctx); err == nil {
		gctx.RelationshipTypes = types
	}
}

func (p *Provider) hintsFor(query string, nodes []model.GraphNode) []model.SimilarityHint {
	var hints []model.SimilarityHint
	for _, n := range nodes {
		score := similarity.TrigramSimilarity(query, n.DisplayName())
		if score > p.HintFloor {
			hints = append(hints, model.SimilarityHint{NodeID: n.ID, Name: n.DisplayName(), Score: score})
		}
	}
	sort.Slice(hints, func(i, j int) bool {
		if hints[i].Score != hints[j].Score {
			return hints[i].Score > hints[j].Score
		}
		return hints[i].NodeID < hints[j].NodeID
	})
	return hints
}

// aggregator merges subgraphs into one snapshot, deduplicating by id and
// honoring the node cap.
type aggregator struct {
	maxNodes  int
	nodeSeen  map[string]bool
	edgeSeen  map[string]bool
	nodes     []model.GraphNode
	edges     []model.GraphEdge
}

func newAggregator(maxNodes int) *aggregator {
	return &aggregator{
		maxNodes: maxNodes,
		nodeSeen: make(map[string]bool),
		edgeSeen: make(map[string]bool),
	}
}

func (a *aggregator) add(nodes []model.GraphNode, edges []model.GraphEdge) {
	for _, n := range nodes {
		if a.nodeSeen[n.ID] {
			continue
		}
		if a.maxNodes > 0 && len(a.nodes) >= a.maxNodes {
			break
		}
		a.nodeSeen[n.ID] = true
		a.nodes = append(a.nodes, n)
	}
	for _, e := range edges {
		if a.edgeSeen[e.ID] {
			continue
		}
		if !a.nodeSeen[e.SourceID] || !a.nodeSeen[e.TargetID] {
			continue
		}
		a.edgeSeen[e.ID] = true
		a.edges = append(a.edges, e)
	}
}

func (a *aggregator) context() *model.GraphContext {
	return &model.GraphContext{Nodes: a.nodes, Edges: a.edges}
}
