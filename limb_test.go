package critter

import (
	"errors"
	"math"
	"testing"

	"github.com/adammck/critter/math2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimbSystem(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 5, 10, 0, math.Pi, 1)

	l, err := NewLimbSystem(c, end, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, []System{l}, c.Systems())
	assert.Equal(t, 3, l.Length())
	assert.Equal(t, end, l.End())
	assert.Equal(t, 2.0, l.Speed())

	nodes := l.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, end, nodes[2])
	assert.Equal(t, l.Hip(), nodes[0].Parent())
	for i := 1; i < len(nodes); i++ {
		assert.Equal(t, Node(nodes[i-1]), nodes[i].Parent())
	}

	// The hip is the second segment of the five.
	assert.Equal(t, Node(c.Segments()[1]), l.Hip())
}

func TestNewLimbSystemTruncates(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 4, 10, 0, math.Pi, 1)

	l, err := NewLimbSystem(c, end, 32, 8)
	require.NoError(t, err)

	assert.Equal(t, 4, l.Length())
	assert.Len(t, l.Nodes(), 4)
	assert.Equal(t, Node(c), l.Hip())
}

func TestNewLimbSystemMinimumLength(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 4, 10, 0, math.Pi, 1)

	l, err := NewLimbSystem(c, end, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Length())
	assert.Equal(t, []*Segment{end}, l.Nodes())
}

func TestNewLimbSystemInvalid(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 2, 10, 0, math.Pi, 1)

	other := newTestCreature(t, demoParams(0, 0))
	otherEnd := chain(t, other, 2, 10, 0, math.Pi, 1)

	type eg struct {
		c     *Creature
		end   *Segment
		speed float64
	}

	examples := []eg{
		{nil, end, 1},
		{c, nil, 1},
		{c, otherEnd, 1},
		{c, end, -1},
		{c, end, math.NaN()},
	}

	for i, x := range examples {
		l, err := NewLimbSystem(x.c, x.end, 2, x.speed)
		assert.Nil(t, l, "example %d", i+1)
		assert.True(t, errors.Is(err, ErrInvalidConfig), "example %d: %v", i+1, err)
	}

	assert.Empty(t, c.Systems())
}

// When the target is further away than the limb can reach, it ends up fully
// extended toward it.
func TestMoveToFullyExtends(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 2, 5, 0, 2*math.Pi, 1)

	l, err := NewLimbSystem(c, end, 2, 100)
	require.NoError(t, err)

	l.MoveTo(20, 0)
	assert.True(t, near(math2d.Vector2{X: 10, Y: 0}, end.Position()), "got %s", end.Position())
	assert.True(t, near(math2d.Vector2{X: 5, Y: 0}, l.Nodes()[0].Position()), "got %s", l.Nodes()[0].Position())
	checkInvariants(t, c)
}

func TestMoveToConverges(t *testing.T) {
	type eg struct {
		target math2d.Vector2
	}

	examples := []eg{
		{math2d.Vector2{X: 15, Y: 12}},
		{math2d.Vector2{X: 0, Y: 25}},
		{math2d.Vector2{X: -15, Y: 10}},
		{math2d.Vector2{X: 5, Y: -20}},
		{math2d.Vector2{X: 3, Y: 3}},
	}

	for i, x := range examples {
		c := newTestCreature(t, demoParams(0, 0))
		end := chain(t, c, 3, 10, 0, 2*math.Pi, 1)

		speed := 2.0
		l, err := NewLimbSystem(c, end, 3, speed)
		require.NoError(t, err)

		// The end moves about speed per call. Pinning the chain back onto the
		// hip can push it slightly further.
		prev := end.Position()
		for n := 0; n < 300; n++ {
			l.MoveTo(x.target.X, x.target.Y)
			require.LessOrEqual(t, end.Position().Distance(prev), speed*1.01, "example %d, call %d", i+1, n)
			prev = end.Position()
		}

		// Once there, it stays there.
		for n := 0; n < 50; n++ {
			l.MoveTo(x.target.X, x.target.Y)
			assert.LessOrEqual(t, end.Position().Distance(x.target), speed, "example %d", i+1)
		}

		checkInvariants(t, c)
	}
}

func TestMoveToTargetAtEnd(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 3, 10, 0.4, math.Pi, 1.5)

	l, err := NewLimbSystem(c, end, 3, 5)
	require.NoError(t, err)

	before := end.Position()
	l.MoveTo(before.X, before.Y)

	assert.True(t, near(before, end.Position()), "got %s, expected %s", end.Position(), before)
	for _, s := range c.Segments() {
		assert.False(t, math.IsNaN(s.AbsAngle()))
	}
	checkInvariants(t, c)
}

func TestMoveToDragsSideBranches(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	hip := chain(t, c, 2, 10, 0, 2*math.Pi, 1)

	// A finger hanging off the side of the chain, which is not part of it.
	finger, err := NewSegment(hip, 4, math.Pi/2, 0.1, 4)
	require.NoError(t, err)

	end := chain(t, hip, 2, 10, 0, 2*math.Pi, 1)
	l, err := NewLimbSystem(c, end, 3, 5)
	require.NoError(t, err)

	for n := 0; n < 20; n++ {
		l.MoveTo(10, 25)
	}

	assert.InDelta(t, hip.AbsAngle()+math.Pi/2, finger.AbsAngle(), 1e-9)
	assert.InDelta(t, 4, finger.Position().Distance(hip.Position()), 1e-9)
	checkInvariants(t, c)
}

func TestLimbUpdateFollowsTarget(t *testing.T) {
	c := newTestCreature(t, demoParams(0, 0))
	end := chain(t, c, 3, 10, 0, 2*math.Pi, 1)

	l, err := NewLimbSystem(c, end, 3, 100)
	require.NoError(t, err)
	assert.True(t, l.Standing())

	for n := 0; n < 20; n++ {
		l.Update(5, 20)
	}

	assert.InDelta(t, 0, end.Position().Distance(math2d.Vector2{X: 5, Y: 20}), 1e-6)
}
