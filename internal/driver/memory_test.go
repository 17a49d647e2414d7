package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/agenthands/resolve/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainStore() *MemoryStore {
	// n1 - n2 - n3 - n4 in a line.
	s := NewMemoryStore()
	s.AddNode(model.GraphNode{ID: "n1", Label: "Person", Name: "John Doe"})
	s.AddNode(model.GraphNode{ID: "n2", Label: "Project", Name: "Apollo"})
	s.AddNode(model.GraphNode{ID: "n3", Label: "Ticket", Name: "PROJ-42"})
	s.AddNode(model.GraphNode{ID: "n4", Label: "Person", Name: "Jane Roe"})
	s.AddEdge(model.GraphEdge{ID: "e1", SourceID: "n1", TargetID: "n2", Type: "WORKS_ON"})
	s.AddEdge(model.GraphEdge{ID: "e2", SourceID: "n2", TargetID: "n3", Type: "TRACKS"})
	s.AddEdge(model.GraphEdge{ID: "e3", SourceID: "n3", TargetID: "n4", Type: "ASSIGNED_TO"})
	return s
}

func TestMemoryStore_FindNodesByName(t *testing.T) {
	s := chainStore()
	nodes, err := s.FindNodesByName(context.Background(), "john")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "n1", nodes[0].ID)
}

func TestMemoryStore_SubgraphDepthBound(t *testing.T) {
	s := chainStore()

	nodes, edges, err := s.SubgraphAroundNode(context.Background(), "n1", 2, 0)
	require.NoError(t, err)
	// Depth 2 from n1 reaches n2 and n3 but not n4.
	require.Len(t, nodes, 3)
	assert.Equal(t, "n1", nodes[0].ID)
	require.Len(t, edges, 2)
}

func TestMemoryStore_SubgraphNodeCap(t *testing.T) {
	s := chainStore()

	nodes, edges, err := s.SubgraphAroundNode(context.Background(), "n1", 3, 2)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	// Only edges with both endpoints inside the cap survive.
	require.Len(t, edges, 1)
	assert.Equal(t, "e1", edges[0].ID)
}

func TestMemoryStore_UnknownNodeYieldsEmptySubgraph(t *testing.T) {
	s := chainStore()
	nodes, edges, err := s.SubgraphAroundNode(context.Background(), "missing", 2, 0)
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Empty(t, edges)
}

func TestMemoryStore_AllNodesLimit(t *testing.T) {
	s := chainStore()
	nodes, err := s.AllNodes(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}

func TestMemoryStore_Schema(t *testing.T) {
	s := chainStore()

	labels, err := s.AllNodeLabels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Project", "Ticket"}, labels)

	types, err := s.AllRelationshipTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ASSIGNED_TO", "TRACKS", "WORKS_ON"}, types)

	s.SchemaErr = errors.New("introspection unavailable")
	_, err = s.AllNodeLabels(context.Background())
	assert.Error(t, err)
}
