package model

import "time"

type ResolutionStrategy string

const (
	CreateNew   ResolutionStrategy = "create_new"
	UseExisting ResolutionStrategy = "use_existing"
	AskUser     ResolutionStrategy = "ask_user"
)

// EntityResolution is the outcome of resolving a single mention.
type EntityResolution struct {
	Strategy   ResolutionStrategy `json:"strategy"`
	EntityID   *string            `json:"entity_id,omitempty"`
	Confidence EntityConfidence   `json:"confidence"`
	Reasoning  string             `json:"reasoning"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Validate enforces the id invariant: use_existing always carries an entity
// id, create_new never does.
func (r EntityResolution) Validate() error {
	switch r.Strategy {
	case UseExisting:
		if r.EntityID == nil || *r.EntityID == "" {
			return ErrMissingEntityID
		}
	case CreateNew:
		if r.EntityID != nil {
			return ErrUnexpectedEntityID
		}
	}
	return r.Confidence.Validate()
}
