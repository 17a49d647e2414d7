package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ElementType string

const (
	NodeReference   ElementType = "node_reference"
	EdgeReference   ElementType = "edge_reference"
	LiteralValue    ElementType = "literal_value"
	SchemaReference ElementType = "schema_reference"
)

// EntityMention is a free-text reference to something that may exist in the
// graph. Candidates accumulate on the mention as resolution progresses.
type EntityMention struct {
	ID          string            `json:"id"`
	SurfaceForm string            `json:"surface_form"`
	ElementType ElementType       `json:"element_type"`
	ResolvedID  *string           `json:"resolved_id,omitempty"`
	Candidates  []EntityCandidate `json:"candidates,omitempty"`
	Confidence  *EntityConfidence `json:"confidence,omitempty"`
	Context     Properties        `json:"context,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func NewEntityMention(surfaceForm string, elementType ElementType) (*EntityMention, error) {
	trimmed := strings.TrimSpace(surfaceForm)
	if trimmed == "" {
		return nil, ErrEmptySurfaceForm
	}
	return &EntityMention{
		ID:          uuid.New().String(),
		SurfaceForm: trimmed,
		ElementType: elementType,
		Context:     Properties{},
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (m *EntityMention) AddCandidate(c EntityCandidate) {
	m.Candidates = append(m.Candidates, c)
}

// EntityCandidate is a concrete graph node proposed as a referent of a
// mention. Candidates are value objects; two candidates are the same entity
// iff their IDs match.
type EntityCandidate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Label      string     `json:"label,omitempty"`
	Similarity float64    `json:"similarity"`
	Properties Properties `json:"properties,omitempty"`
	Context    Properties `json:"context,omitempty"`
}

func NewEntityCandidate(id, name string) (*EntityCandidate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyCandidateName
	}
	return &EntityCandidate{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Properties: Properties{},
		Context:    Properties{},
	}, nil
}

func (c EntityCandidate) SameEntity(other EntityCandidate) bool {
	return c.ID == other.ID
}
