package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/resolve/internal/core/model"
)

const findByNamePageLimit = 100

// MemgraphStore implements GraphStore over a Bolt connection. It works
// against Memgraph and Neo4j alike; only read queries are issued.
type MemgraphStore struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphStore(uri, username, password string) (*MemgraphStore, error) {
	d, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := d.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	return &MemgraphStore{Driver: d}, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func (s *MemgraphStore) executeQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (s *MemgraphStore) FindNodesByName(ctx context.Context, name string) ([]model.GraphNode, error) {
	result, err := s.executeQuery(ctx, FindNodesByNameQuery, map[string]interface{}{
		"name":  name,
		"limit": findByNamePageLimit,
	})
	if err != nil {
		return nil, err
	}

	var nodes []model.GraphNode
	for _, rec := range result.Records {
		raw, ok := rec.Get("n")
		if !ok {
			continue
		}
		if dbNode, ok := raw.(neo4j.Node); ok {
			nodes = append(nodes, materializeNode(dbNode))
		}
	}
	return nodes, nil
}

func (s *MemgraphStore) AllNodes(ctx context.Context, limit int) ([]model.GraphNode, error) {
	result, err := s.executeQuery(ctx, AllNodesQuery, map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}

	var nodes []model.GraphNode
	for _, rec := range result.Records {
		raw, ok := rec.Get("n")
		if !ok {
			continue
		}
		if dbNode, ok := raw.(neo4j.Node); ok {
			nodes = append(nodes, materializeNode(dbNode))
		}
	}
	return nodes, nil
}

func (s *MemgraphStore) SubgraphAroundNode(ctx context.Context, id string, maxDepth, maxNodes int) ([]model.GraphNode, []model.GraphEdge, error) {
	if maxDepth < 1 {
		maxDepth = 1
	}
	query := fmt.Sprintf(SubgraphAroundNodeQueryTemplate, maxDepth)

	result, err := s.executeQuery(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	elemToID := make(map[string]string) // bolt element id -> materialized node id
	var nodes []model.GraphNode
	var edges []model.GraphEdge

	appendNode := func(dbNode neo4j.Node) {
		n := materializeNode(dbNode)
		if seen[n.ID] {
			return
		}
		if maxNodes > 0 && len(nodes) >= maxNodes {
			return
		}
		seen[n.ID] = true
		elemToID[dbNode.ElementId] = n.ID
		nodes = append(nodes, n)
	}

	for _, rec := range result.Records {
		if raw, ok := rec.Get("start"); ok {
			if dbNode, ok := raw.(neo4j.Node); ok {
				appendNode(dbNode)
			}
		}
		if raw, ok := rec.Get("nodes"); ok {
			if list, ok := raw.([]interface{}); ok {
				for _, item := range list {
					if dbNode, ok := item.(neo4j.Node); ok {
						appendNode(dbNode)
					}
				}
			}
		}
		if raw, ok := rec.Get("rels"); ok {
			if list, ok := raw.([]interface{}); ok {
				for _, item := range list {
					if rel, ok := item.(neo4j.Relationship); ok {
						edges = append(edges, materializeEdge(rel))
					}
				}
			}
		}
	}

	// Remap edge endpoints from bolt element ids to materialized node ids
	// and drop edges whose endpoints were cut by the node cap.
	kept := edges[:0]
	for _, e := range edges {
		src, okSrc := elemToID[e.SourceID]
		tgt, okTgt := elemToID[e.TargetID]
		if !okSrc || !okTgt {
			continue
		}
		e.SourceID = src
		e.TargetID = tgt
		kept = append(kept, e)
	}
	edges = kept

	return nodes, edges, nil
}

func (s *MemgraphStore) AllNodeLabels(ctx context.Context) ([]string, error) {
	result, err := s.executeQuery(ctx, AllNodeLabelsQuery, nil)
	if err != nil {
		return nil, err
	}
	var labels []string
	for _, rec := range result.Records {
		if raw, ok := rec.Get("label"); ok {
			if label, ok := raw.(string); ok {
				labels = append(labels, label)
			}
		}
	}
	return labels, nil
}

func (s *MemgraphStore) AllRelationshipTypes(ctx context.Context) ([]string, error) {
	result, err := s.executeQuery(ctx, AllRelationshipTypesQuery, nil)
	if err != nil {
		return nil, err
	}
	var types []string
	for _, rec := range result.Records {
		if raw, ok := rec.Get("relationshipType"); ok {
			if t, ok := raw.(string); ok {
				types = append(types, t)
			}
		}
	}
	return types, nil
}

func materializeNode(dbNode neo4j.Node) model.GraphNode {
	props := model.PropertiesFromAny(dbNode.Props)

	id := dbNode.ElementId
	if v, ok := props["uuid"]; ok && v.String() != "" {
		id = v.String()
		delete(props, "uuid")
	}

	label := ""
	if len(dbNode.Labels) > 0 {
		label = dbNode.Labels[0]
	}

	name := ""
	if v, ok := props["name"]; ok {
		name = v.String()
		delete(props, "name")
	}

	return model.GraphNode{ID: id, Label: label, Name: name, Properties: props}
}

func materializeEdge(rel neo4j.Relationship) model.GraphEdge {
	props := model.PropertiesFromAny(rel.Props)

	id := rel.ElementId
	if v, ok := props["uuid"]; ok && v.String() != "" {
		id = v.String()
		delete(props, "uuid")
	}

	return model.GraphEdge{
		ID:         id,
		SourceID:   rel.StartElementId,
		TargetID:   rel.EndElementId,
		Type:       rel.Type,
		Properties: props,
	}
}
