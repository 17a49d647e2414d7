package model

import "math"

// Component weights for the overall confidence. These are a cross-cutting
// invariant: no other combination function is permitted.
const (
	WeightNameMatch     = 0.4
	WeightTypeMatch     = 0.3
	WeightPropertyMatch = 0.2
	WeightContextMatch  = 0.1

	// OverallTolerance bounds the allowed drift between Overall and the
	// weighted sum. Anything wider than float rounding is a defect.
	OverallTolerance = 1e-9
)

// EntityConfidence carries the four component scores and their weighted sum.
type EntityConfidence struct {
	NameMatch     float64 `json:"name_match"`
	TypeMatch     float64 `json:"type_match"`
	PropertyMatch float64 `json:"property_match"`
	ContextMatch  float64 `json:"context_match"`
	Overall       float64 `json:"overall"`
}

// NewConfidence computes Overall from the components, so the weighted-sum
// invariant holds by construction.
func NewConfidence(nameMatch, typeMatch, propertyMatch, contextMatch float64) EntityConfidence {
	return EntityConfidence{
		NameMatch:     nameMatch,
		TypeMatch:     typeMatch,
		PropertyMatch: propertyMatch,
		ContextMatch:  contextMatch,
		Overall: WeightNameMatch*nameMatch +
			WeightTypeMatch*typeMatch +
			WeightPropertyMatch*propertyMatch +
			WeightContextMatch*contextMatch,
	}
}

func (c EntityConfidence) Validate() error {
	for _, v := range []float64{c.NameMatch, c.TypeMatch, c.PropertyMatch, c.ContextMatch, c.Overall} {
		if v < 0 || v > 1 {
			return ErrInvalidConfidence
		}
	}
	predicted := WeightNameMatch*c.NameMatch +
		WeightTypeMatch*c.TypeMatch +
		WeightPropertyMatch*c.PropertyMatch +
		WeightContextMatch*c.ContextMatch
	if math.Abs(c.Overall-predicted) > OverallTolerance {
		return ErrInvalidConfidence
	}
	return nil
}

func (c EntityConfidence) IsCertain() bool {
	return c.Overall > 0.95
}

func (c EntityConfidence) RequiresHuman() bool {
	return c.Overall > 0.3 && c.Overall < 0.7
}

func (c EntityConfidence) IsTooLow() bool {
	return c.Overall < 0.3
}
