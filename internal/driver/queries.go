package driver

const (
	FindNodesByNameQuery = `
		MATCH (n)
		WHERE toLower(coalesce(n.name, "")) CONTAINS toLower($name)
		RETURN n
		LIMIT $limit
	`

	AllNodesQuery = `
		MATCH (n)
		RETURN n
		ORDER BY n.uuid
		LIMIT $limit
	`

	AllNodeLabelsQuery = `
		CALL db.labels() YIELD label
		RETURN label
	`

	AllRelationshipTypesQuery = `
		CALL db.relationshipTypes() YIELD relationshipType
		RETURN relationshipType
	`

	// Depth is interpolated by the caller; cypher does not allow a parameter
	// inside the variable-length bound.
	SubgraphAroundNodeQueryTemplate = `
		MATCH (start {uuid: $id})
		OPTIONAL MATCH path = (start)-[*1..%d]-(m)
		WITH start, collect(path) AS paths
		UNWIND paths AS p
		UNWIND nodes(p) AS n
		UNWIND relationships(p) AS r
		RETURN DISTINCT start, collect(DISTINCT n) AS nodes, collect(DISTINCT r) AS rels
	`
)
