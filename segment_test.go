package critter

import (
	"errors"
	"math"
	"testing"

	"github.com/adammck/critter/math2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSegment(t *testing.T) {
	c := newTestCreature(t, demoParams(10, 20))

	s, err := NewSegment(c, 5, math.Pi/2, math.Pi, 1)
	require.NoError(t, err)

	assert.Equal(t, []*Segment{s}, c.Children())
	assert.Equal(t, []*Segment{s}, c.Segments())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, c, s.Creature())
	assert.InDelta(t, math.Pi/2, s.AbsAngle(), 1e-12)
	assert.True(t, near(math2d.Vector2{X: 10, Y: 25}, s.Position()), "got %s", s.Position())

	ss, err := NewSegment(s, 3, -math.Pi/2, math.Pi, 1)
	require.NoError(t, err)
	assert.Equal(t, []*Segment{ss}, s.Children())
	assert.Equal(t, 1, ss.Index())
	assert.True(t, near(math2d.Vector2{X: 13, Y: 25}, ss.Position()), "got %s", ss.Position())
}

func TestNewSegmentInvalid(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))

	type eg struct {
		parent    Node
		size      float64
		span      float64
		stiffness float64
	}

	examples := []eg{
		{nil, 1, 1, 1},
		{(*Segment)(nil), 1, 1, 1},
		{(*Creature)(nil), 1, 1, 1},
		{c, -1, 1, 1},
		{c, 1, -1, 1},
		{c, 1, 1, 0.5},
		{c, math.NaN(), 1, 1},
		{c, 1, math.Inf(1), 1},
	}

	for i, x := range examples {
		s, err := NewSegment(x.parent, x.size, 0, x.span, x.stiffness)
		assert.Nil(t, s, "example %d", i+1)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "example %d: %v", i+1, err)
	}

	assert.Empty(t, c.Segments())
}

// A quarter turn is already inside a half-turn range, so it is left alone.
func TestRelaxWithinRange(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	s, err := NewSegment(c, 10, 0, math.Pi, 1)
	require.NoError(t, err)

	s.rel = math.Pi / 4
	s.Relax(false, true)

	assert.InDelta(t, math.Pi/4, s.RelAngle(), 1e-12)
	assert.InDelta(t, 10*math.Cos(math.Pi/4), s.Position().X, 1e-9)
	assert.InDelta(t, 10*math.Sin(math.Pi/4), s.Position().Y, 1e-9)
}

func TestRelaxClampsToRange(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	s, err := NewSegment(c, 10, 0, math.Pi, 1)
	require.NoError(t, err)

	s.rel = 3 * math.Pi / 4
	s.Relax(false, true)

	assert.InDelta(t, math.Pi/2, s.RelAngle(), 1e-12)
	assert.InDelta(t, 0, s.Position().X, 1e-9)
	assert.InDelta(t, 10, s.Position().Y, 1e-9)
}

func TestRelaxStiffness(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	s, err := NewSegment(c, 10, 0.5, 2*math.Pi, 4)
	require.NoError(t, err)

	// The deviation decays by the stiffness once per call.
	s.rel = 0.5 + 0.8
	s.Relax(false, true)
	assert.InDelta(t, 0.5+0.2, s.RelAngle(), 1e-12)

	s.Relax(false, true)
	assert.InDelta(t, 0.5+0.05, s.RelAngle(), 1e-12)

	// Without constraint, only the wrapping applies.
	s.rel = 0.5 + 0.8 + 4*math.Pi
	s.Relax(false, false)
	assert.InDelta(t, 0.5+0.8, s.RelAngle(), 1e-9)
}

func TestRelaxWrapsNearRest(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))

	for _, def := range []float64{-3, -1, 0, 1.2, 3} {
		s, err := NewSegment(c, 1, def, 2*math.Pi, 1)
		require.NoError(t, err)

		for a := -15.0; a < 15; a += 0.41 {
			s.rel = a
			s.Relax(false, false)
			assert.Greater(t, s.RelAngle(), def-math.Pi-1e-9)
			assert.LessOrEqual(t, s.RelAngle(), def+math.Pi+1e-9)
			assert.InDelta(t, math.Cos(a), math.Cos(s.RelAngle()), 1e-9)
		}
	}
}

func TestRelaxPropagates(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	root, err := NewSegment(c, 10, 0, 2*math.Pi, 1)
	require.NoError(t, err)
	tip := chain(t, root, 3, 10, 0, 2*math.Pi, 1)

	root.rel = math.Pi / 2
	root.Relax(false, true)
	assert.False(t, near(math2d.Vector2{X: 0, Y: 40}, tip.Position()))

	root.Relax(true, true)
	assert.True(t, near(math2d.Vector2{X: 0, Y: 40}, tip.Position()), "got %s", tip.Position())
	checkInvariants(t, c)
}

func TestReachToward(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	s, err := NewSegment(c, 10, 0, 2*math.Pi, 1)
	require.NoError(t, err)
	tip := chain(t, s, 1, 10, 0, 2*math.Pi, 1)

	// Drag the end of the first segment somewhere else; it should snap back
	// to its own length, pointing that way, and the child should follow.
	s.pos = math2d.Vector2{X: 0, Y: 3}
	s.ReachToward(true)

	assert.InDelta(t, math.Pi/2, s.AbsAngle(), 1e-12)
	assert.True(t, near(math2d.Vector2{X: 0, Y: 10}, s.Position()), "got %s", s.Position())
	assert.InDelta(t, 10, tip.Position().Distance(s.Position()), 1e-9)
	checkInvariants(t, c)
}

func TestReachTowardRespectsRange(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	s, err := NewSegment(c, 10, 0, math.Pi/2, 1)
	require.NoError(t, err)

	s.pos = math2d.Vector2{X: -5, Y: 5}
	s.ReachToward(false)

	assert.InDelta(t, math.Pi/4, s.RelAngle(), 1e-12)
	assert.True(t, s.Range().Contains(s.RelAngle()))
}

func TestReachTowardZeroDistance(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	s, err := NewSegment(c, 10, 0.3, 2*math.Pi, 1)
	require.NoError(t, err)

	s.pos = c.Position()
	s.ReachToward(false)

	assert.InDelta(t, 0.3, s.RelAngle(), 1e-12)
	assert.False(t, math.IsNaN(s.Position().X))
	assert.InDelta(t, 10, s.Position().Distance(c.Position()), 1e-9)
}

func TestSegmentLine(t *testing.T) {
	c := newTestCreature(t, demoParams(1, 2))
	s, err := NewSegment(c, 3, 0, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, Line{From: math2d.Vector2{X: 1, Y: 2}, To: math2d.Vector2{X: 4, Y: 2}}, s.Line())
}
