package driver

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agenthands/resolve/internal/core/model"
)

// MemoryStore is a map-backed GraphStore for tests and embedded use. All
// listings are ordered by id so results are deterministic.
type MemoryStore struct {
	mu    sync.RWMutex
	nodes map[string]model.GraphNode
	edges map[string]model.GraphEdge

	labels   []string
	relTypes []string

	// SchemaErr, when set, is returned by the schema introspection calls.
	// Lets tests exercise the degrade-to-empty path.
	SchemaErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nodes: make(map[string]model.GraphNode),
		edges: make(map[string]model.GraphEdge),
	}
}

func (s *MemoryStore) AddNode(n model.GraphNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.ID] = n
	if n.Label != "" && !contains(s.labels, n.Label) {
		s.labels = append(s.labels, n.Label)
	}
}

func (s *MemoryStore) AddEdge(e model.GraphEdge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[e.ID] = e
	if e.Type != "" && !contains(s.relTypes, e.Type) {
		s.relTypes = append(s.relTypes, e.Type)
	}
}

func (s *MemoryStore) FindNodesByName(ctx context.Context, name string) ([]model.GraphNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(name)
	var out []model.GraphNode
	for _, n := range s.sortedNodes() {
		if strings.Contains(strings.ToLower(n.DisplayName()), needle) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *MemoryStore) AllNodes(ctx context.Context, limit int) ([]model.GraphNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := s.sortedNodes()
	if limit > 0 && len(nodes) > limit {
		nodes = nodes[:limit]
	}
	return nodes, nil
}

func (s *MemoryStore) SubgraphAroundNode(ctx context.Context, id string, maxDepth, maxNodes int) ([]model.GraphNode, []model.GraphEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[id]; !ok {
		return nil, nil, nil
	}

	// BFS out to maxDepth, honoring the node cap.
	visited := map[string]bool{id: true}
	order := []string{id}
	frontier := []string{id}

	for depth := 0; depth < maxDepth; depth++ {
		var next []string
		for _, u := range frontier {
			for _, v := range s.neighbors(u) {
				if visited[v] {
					continue
				}
				if maxNodes > 0 && len(order) >= maxNodes {
					break
				}
				visited[v] = true
				order = append(order, v)
				next = append(next, v)
			}
		}
		sort.Strings(next)
		frontier = next
	}

	nodes := make([]model.GraphNode, 0, len(order))
	for _, nid := range order {
		nodes = append(nodes, s.nodes[nid])
	}

	var edges []model.GraphEdge
	for _, eid := range s.sortedEdgeIDs() {
		e := s.edges[eid]
		if visited[e.SourceID] && visited[e.TargetID] {
			edges = append(edges, e)
		}
	}

	return nodes, edges, nil
}

func (s *MemoryStore) AllNodeLabels(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.SchemaErr != nil {
		return nil, s.SchemaErr
	}
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) AllRelationshipTypes(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.SchemaErr != nil {
		return nil, s.SchemaErr
	}
	out := make([]string, len(s.relTypes))
	copy(out, s.relTypes)
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) sortedNodes() []model.GraphNode {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	nodes := make([]model.GraphNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, s.nodes[id])
	}
	return nodes
}

func (s *MemoryStore) sortedEdgeIDs() []string {
	ids := make([]string, 0, len(s.edges))
	for id := range s.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *MemoryStore) neighbors(id string) []string {
	var out []string
	for _, eid := range s.sortedEdgeIDs() {
		e := s.edges[eid]
		if e.SourceID == id {
			out = append(out, e.TargetID)
		}
		if e.TargetID == id {
			out = append(out, e.SourceID)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
