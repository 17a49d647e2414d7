package model

// GraphNode is materialized graph data: plain values, no live store handle.
type GraphNode struct {
	ID         string     `json:"id"`
	Label      string     `json:"label,omitempty"`
	Name       string     `json:"name,omitempty"`
	Properties Properties `json:"properties,omitempty"`
}

// nameFallbackKeys are tried in order when a node has no name of its own.
var nameFallbackKeys = []string{"name", "title", "key", "id"}

func (n GraphNode) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	for _, k := range nameFallbackKeys {
		if v, ok := n.Properties[k]; ok && !v.IsNull() && v.String() != "" {
			return v.String()
		}
	}
	return n.ID
}

type GraphEdge struct {
	ID          string     `json:"id"`
	SourceID    string     `json:"source_id"`
	TargetID    string     `json:"target_id"`
	SourceLabel string     `json:"source_label,omitempty"`
	TargetLabel string     `json:"target_label,omitempty"`
	Type        string     `json:"type"`
	Properties  Properties `json:"properties,omitempty"`
}

// SimilarityHint is a pre-computed (node, score) pair for one query string.
type SimilarityHint struct {
	NodeID string  `json:"node_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}

// GraphContext is an immutable, bounded snapshot of graph data relevant to
// one resolution request. Snapshots own no mutable state and are never
// written back to the graph.
type GraphContext struct {
	Nodes             []GraphNode                 `json:"nodes"`
	Edges             []GraphEdge                 `json:"edges"`
	Labels            []string                    `json:"labels"`
	RelationshipTypes []string                    `json:"relationship_types"`
	SimilarityHints   map[string][]SimilarityHint `json:"similarity_hints,omitempty"`
}

func (g *GraphContext) NodeByID(id string) (GraphNode, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return GraphNode{}, false
}
