package critter

import (
	"math"
	"testing"

	"github.com/adammck/critter/math2d"
	"github.com/stretchr/testify/require"
)

// demoParams are the motion parameters which most of the demo creatures use.
func demoParams(x, y float64) Params {
	return Params{
		X: x, Y: y, Angle: 0,
		FAccel: 12, FFric: 1, FRes: 0.5, FThresh: 16,
		RAccel: 0.5, RFric: 0.085, RRes: 0.5, RThresh: 0.3,
	}
}

func newTestCreature(t *testing.T, p Params) *Creature {
	t.Helper()
	c, err := NewCreature(p, WithSeed(1))
	require.NoError(t, err)
	return c
}

// chain hangs n identical segments off parent, each the parent of the next,
// and returns the last. Only the first is angled; the rest continue straight.
func chain(t *testing.T, parent Node, n int, size, angle, span, stiffness float64) *Segment {
	t.Helper()

	var s *Segment
	for i := 0; i < n; i++ {
		a := 0.0
		if i == 0 {
			a = angle
		}

		var err error
		s, err = NewSegment(parent, size, a, span, stiffness)
		require.NoError(t, err)
		parent = s
	}

	return s
}

// checkInvariants asserts that every segment of the creature is consistent
// with its parent.
func checkInvariants(t *testing.T, c *Creature) {
	t.Helper()

	for _, s := range c.Segments() {
		p := s.Parent()
		require.InDelta(t, p.AbsAngle()+s.RelAngle(), s.AbsAngle(), 1e-9, "abs angle of %s", s)

		d := s.Position().Distance(p.Position())
		require.InDelta(t, s.Size(), d, 1e-9*math.Max(1, s.Size()), "length of %s", s)

		rel := s.RelAngle() - s.DefAngle()
		require.Greater(t, rel, -math.Pi-1e-9, "wrap of %s", s)
		require.LessOrEqual(t, rel, math.Pi+1e-9, "wrap of %s", s)
	}
}

func near(a, b math2d.Vector2) bool {
	return a.Distance(b) < 1e-9
}
