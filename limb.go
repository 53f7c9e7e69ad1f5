package critter

import (
	"fmt"
	"math"

	"github.com/adammck/critter/math2d"
)

// LimbSystem drags the end of a chain of segments toward a target, a little
// further each frame. Without a gait, it simply reaches for whatever the
// creature is following, like a tentacle.
type LimbSystem struct {
	creature *Creature

	// The chain, ordered from the root (whose parent is the hip) to the tip.
	// These are the creature's own segments, not copies.
	nodes []*Segment
	end   *Segment
	hip   Node

	// The maximum distance which the end moves toward the target per call.
	speed float64

	// Number of nodes in the chain. This may be fewer than were asked for, if
	// the root of the tree was reached first.
	length int
}

// NewLimbSystem attaches a limb to the creature, controlling the chain which
// ends at end and extends length segments toward the root.
func NewLimbSystem(c *Creature, end *Segment, length int, speed float64) (*LimbSystem, error) {
	l, err := newLimb(c, end, length, speed)
	if err != nil {
		return nil, err
	}

	c.Attach(l)
	return l, nil
}

func newLimb(c *Creature, end *Segment, length int, speed float64) (*LimbSystem, error) {
	if c == nil {
		return nil, fmt.Errorf("limb has no creature: %w", ErrInvalidConfig)
	}

	if end == nil {
		return nil, fmt.Errorf("limb has no end segment: %w", ErrInvalidConfig)
	}

	if end.creature != c {
		return nil, fmt.Errorf("limb end segment #%d belongs to another creature: %w", end.index, ErrInvalidConfig)
	}

	if speed < 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return nil, fmt.Errorf("limb speed is invalid (%v): %w", speed, ErrInvalidConfig)
	}

	if length < 1 {
		length = 1
	}

	// Collect the chain tip first, stopping early at the root.
	nodes := make([]*Segment, 0, length)
	for node := end; node != nil && len(nodes) < length; node = node.parent.asSegment() {
		nodes = append(nodes, node)
	}

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	if len(nodes) < length {
		log.Debugf("limb truncated from %d to %d segments", length, len(nodes))
	}

	return &LimbSystem{
		creature: c,
		nodes:    nodes,
		end:      end,
		hip:      nodes[0].parent,
		speed:    speed,
		length:   len(nodes),
	}, nil
}

// MoveTo moves the end of the limb up to speed units toward the given point.
//
// The chain is first relaxed, to pick up whatever the body did since the last
// call. Then each node is hung off the one after it, from the tip back to the
// root, so every link keeps its length. Finally the angles are re-derived from
// the root to the tip, with each node pinned back onto its parent, and any
// side branches are dragged along without constraint.
func (l *LimbSystem) MoveTo(x, y float64) {
	l.nodes[0].Relax(true, true)

	anchor := math2d.Vector2{X: x, Y: y}
	reach := math.Max(0, anchor.Distance(l.end.pos)-l.speed)

	for i := len(l.nodes) - 1; i >= 0; i-- {
		node := l.nodes[i]

		dir, ok := node.pos.Subtract(anchor).Angle()
		if !ok {
			dir = l.previousDirection(i)
		}

		node.pos = anchor.Add(math2d.Polar(dir, reach))
		anchor = node.pos
		reach = node.size
	}

	for i, node := range l.nodes {
		if a, ok := node.pos.Subtract(node.parent.Position()).Angle(); ok {
			node.rel = math2d.WrapAround(a-node.parent.AbsAngle(), node.def)
		}

		node.place()

		var next *Segment
		if i+1 < len(l.nodes) {
			next = l.nodes[i+1]
		}

		for _, child := range node.children {
			if child != next {
				child.Relax(true, false)
			}
		}
	}
}

// previousDirection returns the direction from the anchor to node i as of the
// last pass, for when the two coincide.
func (l *LimbSystem) previousDirection(i int) float64 {
	if i+1 < len(l.nodes) {
		return l.nodes[i+1].abs + math.Pi
	}

	return l.nodes[i].abs + math.Pi
}

// Update reaches for the creature's target.
func (l *LimbSystem) Update(x, y float64) {
	l.MoveTo(x, y)
}

func (l *LimbSystem) Standing() bool {
	return true
}

// Nodes returns the chain, from the root to the tip. The slice must not be
// modified.
func (l *LimbSystem) Nodes() []*Segment {
	return l.nodes
}

func (l *LimbSystem) End() *Segment {
	return l.end
}

func (l *LimbSystem) Hip() Node {
	return l.hip
}

func (l *LimbSystem) Speed() float64 {
	return l.speed
}

func (l *LimbSystem) Length() int {
	return l.length
}
