package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type AmbiguityStatus string

const (
	AmbiguityPending   AmbiguityStatus = "pending"
	AmbiguityResolved  AmbiguityStatus = "resolved"
	AmbiguityAmbiguous AmbiguityStatus = "ambiguous"
	AmbiguityFailed    AmbiguityStatus = "failed"
)

// AmbiguityResolution is a pending human-disambiguation request. The engine
// only materializes the question and candidate sets; it never blocks waiting
// for the response, and the record transitions to resolved only when an
// external actor supplies one.
type AmbiguityResolution struct {
	ID            string                       `json:"id"`
	Mentions      []EntityMention              `json:"mentions"`
	Question      string                       `json:"question"`
	CandidateSets map[string][]EntityCandidate `json:"candidate_sets"`
	Status        AmbiguityStatus              `json:"status"`
	UserResponse  *string                      `json:"user_response,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	ResolvedAt    *time.Time                   `json:"resolved_at,omitempty"`
}

func NewAmbiguityResolution(mentions []EntityMention, question string) (*AmbiguityResolution, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	sets := make(map[string][]EntityCandidate, len(mentions))
	for _, m := range mentions {
		sets[m.ID] = m.Candidates
	}
	return &AmbiguityResolution{
		ID:            uuid.New().String(),
		Mentions:      mentions,
		Question:      question,
		CandidateSets: sets,
		Status:        AmbiguityPending,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Resolve records the user response supplied by the external interaction
// step.
func (a *AmbiguityResolution) Resolve(response string) {
	now := time.Now().UTC()
	a.UserResponse = &response
	a.Status = AmbiguityResolved
	a.ResolvedAt = &now
}

// Fail marks the request as unresolvable (for example the user declined).
func (a *AmbiguityResolution) Fail() {
	a.Status = AmbiguityFailed
}
