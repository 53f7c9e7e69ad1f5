package critter

import (
	"fmt"
	"math"

	"github.com/adammck/critter/math2d"
)

// Segment is a single rigid link in the kinematic tree. Its position is the
// distal end of the link; the proximal end is the position of its parent.
//
// After any update pass, the following always hold:
//
//	abs == parent.AbsAngle() + rel
//	pos == parent.Position() + size * (cos(abs), sin(abs))
//	rel is within (def-π, def+π]
type Segment struct {
	parent   Node
	children []*Segment
	creature *Creature

	// Index of this segment in the creature's arena, in creation order.
	index int

	size      float64
	rel       float64
	def       float64
	abs       float64
	rng       Range
	stiffness float64
	pos       math2d.Vector2
}

// NewSegment attaches a new segment to the given parent, which must already be
// positioned. The angle is the rest angle relative to the parent, span is the
// total width of the allowed range around it, and stiffness is how strongly
// the segment is pulled back to rest each pass (1 leaves it where it is;
// larger pulls harder). The link is permanent.
func NewSegment(parent Node, size, angle, span, stiffness float64) (*Segment, error) {
	if parent == nil {
		return nil, fmt.Errorf("segment has no parent: %w", ErrInvalidConfig)
	}

	c := parent.owner()
	if c == nil {
		return nil, fmt.Errorf("segment parent is not attached to a creature: %w", ErrInvalidConfig)
	}

	for name, v := range map[string]float64{"size": size, "angle": angle, "range": span, "stiffness": stiffness} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("segment %s is not finite (%v): %w", name, v, ErrInvalidConfig)
		}
	}

	if size < 0 {
		return nil, fmt.Errorf("segment size is negative (%v): %w", size, ErrInvalidConfig)
	}

	if span < 0 {
		return nil, fmt.Errorf("segment range is negative (%v): %w", span, ErrInvalidConfig)
	}

	if stiffness < 1 {
		return nil, fmt.Errorf("segment stiffness is less than one (%v): %w", stiffness, ErrInvalidConfig)
	}

	s := &Segment{
		parent:    parent,
		creature:  c,
		size:      size,
		rel:       angle,
		def:       angle,
		abs:       parent.AbsAngle() + angle,
		rng:       Range{Center: angle, Span: span},
		stiffness: stiffness,
	}

	parent.adopt(s)
	c.register(s)
	s.Relax(false, true)

	return s, nil
}

func (s *Segment) String() string {
	return fmt.Sprintf("&Seg{#%d size=%.2f rel=%+.2f° abs=%+.2f° %s}", s.index, s.size, math2d.Deg(s.rel), math2d.Deg(s.abs), s.pos)
}

// Relax is the forward kinematics pass. It wraps the relative angle onto the
// branch nearest the rest angle and, if constrain is true, pulls it toward
// rest by a factor of 1/stiffness and clamps it into the range. The absolute
// angle and position are then recomputed from the parent.
//
// Stiffness is applied once per call, not integrated over time, so the same
// creature settles faster at a higher frame rate.
func (s *Segment) Relax(propagate bool, constrain bool) {
	s.rel = math2d.WrapAround(s.rel, s.def)

	if constrain {
		s.rel = s.rng.Clamp(s.def + (s.rel-s.def)/s.stiffness)
	}

	s.place()

	if propagate {
		for _, c := range s.children {
			c.Relax(true, constrain)
		}
	}
}

// ReachToward treats the current position as having been moved (by the
// parent moving out from under it, or by some external process), and
// re-derives the angle which points from the parent toward it. The segment is
// then relaxed (with constraints), which puts it back at exactly its size from
// the parent. This is what makes a body trail behind its head.
func (s *Segment) ReachToward(propagate bool) {
	if a, ok := s.pos.Subtract(s.parent.Position()).Angle(); ok {
		s.rel = a - s.parent.AbsAngle()
	}

	s.Relax(false, true)

	if propagate {
		for _, c := range s.children {
			c.ReachToward(true)
		}
	}
}

// place recomputes the absolute angle and position from the parent and the
// current relative angle.
func (s *Segment) place() {
	s.abs = s.parent.AbsAngle() + s.rel
	s.pos = s.parent.Position().Add(math2d.Polar(s.abs, s.size))
}

// walk calls fn for this segment and all of its descendants, depth first. It
// returns false if fn asked to stop.
func (s *Segment) walk(fn func(*Segment) bool) bool {
	if !fn(s) {
		return false
	}

	for _, c := range s.children {
		if !c.walk(fn) {
			return false
		}
	}

	return true
}

// Line returns the link from the parent's position to this segment's.
func (s *Segment) Line() Line {
	return Line{
		From: s.parent.Position(),
		To:   s.pos,
	}
}

func (s *Segment) Position() math2d.Vector2 {
	return s.pos
}

func (s *Segment) AbsAngle() float64 {
	return s.abs
}

func (s *Segment) Children() []*Segment {
	return s.children
}

func (s *Segment) Parent() Node {
	return s.parent
}

func (s *Segment) Creature() *Creature {
	return s.creature
}

func (s *Segment) Index() int {
	return s.index
}

func (s *Segment) Size() float64 {
	return s.size
}

func (s *Segment) RelAngle() float64 {
	return s.rel
}

func (s *Segment) DefAngle() float64 {
	return s.def
}

func (s *Segment) Range() Range {
	return s.rng
}

func (s *Segment) Stiffness() float64 {
	return s.stiffness
}

func (s *Segment) owner() *Creature {
	if s == nil {
		return nil
	}

	return s.creature
}

func (s *Segment) asSegment() *Segment {
	return s
}

func (s *Segment) adopt(child *Segment) {
	s.children = append(s.children, child)
}
