package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfidence_WeightedSum(t *testing.T) {
	c := NewConfidence(0.9, 0.8, 0.7, 0.6)

	expected := 0.4*0.9 + 0.3*0.8 + 0.2*0.7 + 0.1*0.6
	assert.InDelta(t, expected, c.Overall, OverallTolerance)
	assert.NoError(t, c.Validate())
}

func TestConfidence_ValidateRejectsDrift(t *testing.T) {
	c := NewConfidence(0.5, 0.5, 0.5, 0.5)
	c.Overall += 0.05 // wider than float rounding

	assert.ErrorIs(t, c.Validate(), ErrInvalidConfidence)
}

func TestConfidence_ValidateRejectsOutOfRange(t *testing.T) {
	c := NewConfidence(1.2, 0.5, 0.5, 0.5)
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfidence)
}

func TestConfidence_Predicates(t *testing.T) {
	certain := NewConfidence(1.0, 1.0, 1.0, 1.0)
	assert.True(t, certain.IsCertain())
	assert.False(t, certain.RequiresHuman())

	// All-0.5 components give overall 0.5, inside the human band.
	human := NewConfidence(0.5, 0.5, 0.5, 0.5)
	assert.True(t, human.RequiresHuman())
	assert.False(t, human.IsCertain())
	assert.False(t, human.IsTooLow())

	low := NewConfidence(0.1, 0.1, 0.1, 0.1)
	assert.True(t, low.IsTooLow())
	assert.False(t, low.RequiresHuman())
	assert.InDelta(t, 0.1, low.Overall, 1e-9)
}

func TestConfidence_WeightedSumHoldsAcrossInputs(t *testing.T) {
	// Sweep a grid of component values; Overall must always equal the fixed
	// weighted sum within tolerance.
	for n := 0.0; n <= 1.0; n += 0.25 {
		for p := 0.0; p <= 1.0; p += 0.5 {
			c := NewConfidence(n, 1-n, p, 1-p)
			predicted := 0.4*n + 0.3*(1-n) + 0.2*p + 0.1*(1-p)
			assert.True(t, math.Abs(c.Overall-predicted) <= OverallTolerance)
			assert.NoError(t, c.Validate())
		}
	}
}
