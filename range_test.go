package critter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	r := Range{Center: 1, Span: math.Pi}

	assert.InDelta(t, 1-math.Pi/2, r.Min(), 1e-12)
	assert.InDelta(t, 1+math.Pi/2, r.Max(), 1e-12)
	assert.Equal(t, 1.5, r.Clamp(1.5))
	assert.Equal(t, r.Max(), r.Clamp(4))
	assert.Equal(t, r.Min(), r.Clamp(-4))
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(3))

	// Zero span locks the angle.
	assert.Equal(t, 0.2, Range{Center: 0.2}.Clamp(7))
}
