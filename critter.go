// Package critter procedurally animates articulated 2D creatures: a tree of
// rigid segments hanging from a mobile body, dragged toward a target by
// angle relaxation, a two-pass inverse kinematics solver, and a stepping
// gait for legs.
//
// Everything here is single threaded. A Creature, its segments and its
// systems are owned by whoever calls Advance, once per frame. Independent
// creatures share nothing, so may be advanced in parallel.
package critter

import (
	"errors"

	"github.com/adammck/critter/math2d"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "critter",
})

// ErrInvalidConfig is wrapped by every error returned while building a
// creature. Nothing returns an error once construction has succeeded.
var ErrInvalidConfig = errors.New("invalid configuration")

// Node is anything a Segment can hang from: the body of a Creature, or another
// Segment. Traversal only ever goes through this interface.
type Node interface {
	Position() math2d.Vector2

	// AbsAngle returns the angle (in radians, in the world space) which
	// children of this node measure their relative angle from.
	AbsAngle() float64

	// Children returns the segments attached directly to this node. The slice
	// is owned by the node, and must not be modified.
	Children() []*Segment

	owner() *Creature
	asSegment() *Segment
	adopt(s *Segment)
}

// System is a controller attached to a creature, which is updated once per
// frame after the body has moved.
type System interface {
	// Update is called with the target which the creature is following.
	Update(x, y float64)

	// Standing returns true if the system is not currently mid-step. Systems
	// without a gait are always standing.
	Standing() bool
}

// Line is a single rigid link, from the position of a segment's parent to the
// position of the segment. This is all a renderer needs.
type Line struct {
	From math2d.Vector2 `json:"from"`
	To   math2d.Vector2 `json:"to"`
}
