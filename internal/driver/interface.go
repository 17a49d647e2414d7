package driver

import (
	"context"

	"github.com/agenthands/resolve/internal/core/model"
)

// GraphStore is the read-only graph query surface the resolution engine
// consumes. Implementations must be safe for concurrent reads; the engine
// never issues writes.
type GraphStore interface {
	FindNodesByName(ctx context.Context, name string) ([]model.GraphNode, error)
	SubgraphAroundNode(ctx context.Context, id string, maxDepth, maxNodes int) ([]model.GraphNode, []model.GraphEdge, error)
	AllNodes(ctx context.Context, limit int) ([]model.GraphNode, error)
	AllNodeLabels(ctx context.Context) ([]string, error)
	AllRelationshipTypes(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}
