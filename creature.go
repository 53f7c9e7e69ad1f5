package critter

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/adammck/critter/math2d"
)

// BodyMode selects how the segment trees follow the body each frame.
type BodyMode string

const (
	// BodyTrail re-derives every segment's angle from where it was left last
	// frame, so the body trails along behind the head like a rope.
	BodyTrail BodyMode = "trail"

	// BodyRigid relaxes every segment toward its rest angle instead, so the
	// trees swing around with the body.
	BodyRigid BodyMode = "rigid"
)

// Params are the motion parameters of a creature, fixed at creation.
type Params struct {
	X     float64
	Y     float64
	Angle float64

	// Forward motion: acceleration per frame toward the target, friction
	// subtracted from the speed, resistance (fraction of speed lost per
	// frame), and the distance from the target within which it stops.
	FAccel  float64
	FFric   float64
	FRes    float64
	FThresh float64

	// Rotation: angular acceleration, friction (below which the turn speed
	// snaps to zero), resistance, and the heading error within which it stops
	// turning.
	RAccel  float64
	RFric   float64
	RRes    float64
	RThresh float64
}

// Option customizes a new creature.
type Option func(*Creature)

// WithRand sets the random source used to jitter footholds.
func WithRand(r *rand.Rand) Option {
	return func(c *Creature) {
		c.rng = r
	}
}

// WithSeed seeds a private random source, so the creature moves the same way
// every time.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithBodyMode(m BodyMode) Option {
	return func(c *Creature) {
		c.body = m
	}
}

// Creature is the root of a kinematic tree: a body with a position and
// heading, which accelerates and turns toward a target. It owns every segment
// hanging from it (directly or not), and every system attached to those.
type Creature struct {
	pos     math2d.Vector2
	heading float64

	// The angle which root segments hang from. This starts as the heading,
	// but is flipped around to face backwards once the creature has moved,
	// so the body trails behind rather than in front.
	frame float64

	fSpeed float64
	rSpeed float64
	speed  float64

	params Params
	body   BodyMode
	rng    *rand.Rand

	children []*Segment
	systems  []System

	// Every segment, in creation order.
	segments []*Segment

	frames uint64
}

// NewCreature creates a creature with no segments, at the position and heading
// given in the params.
func NewCreature(p Params, opts ...Option) (*Creature, error) {
	vals := []struct {
		name string
		v    float64
		min  float64
		max  float64
	}{
		{"x", p.X, math.Inf(-1), math.Inf(1)},
		{"y", p.Y, math.Inf(-1), math.Inf(1)},
		{"angle", p.Angle, math.Inf(-1), math.Inf(1)},
		{"fAccel", p.FAccel, 0, math.Inf(1)},
		{"fFric", p.FFric, 0, math.Inf(1)},
		{"fRes", p.FRes, 0, 1},
		{"fThresh", p.FThresh, 0, math.Inf(1)},
		{"rAccel", p.RAccel, 0, math.Inf(1)},
		{"rFric", p.RFric, 0, math.Inf(1)},
		{"rRes", p.RRes, 0, 1},
		{"rThresh", p.RThresh, 0, math.Inf(1)},
	}

	for _, x := range vals {
		if math.IsNaN(x.v) || math.IsInf(x.v, 0) {
			return nil, fmt.Errorf("creature %s is not finite (%v): %w", x.name, x.v, ErrInvalidConfig)
		}

		if x.v < x.min || x.v > x.max {
			return nil, fmt.Errorf("creature %s (%v) is outside [%v, %v]: %w", x.name, x.v, x.min, x.max, ErrInvalidConfig)
		}
	}

	c := &Creature{
		pos:     math2d.Vector2{X: p.X, Y: p.Y},
		heading: p.Angle,
		frame:   p.Angle,
		params:  p,
		body:    BodyTrail,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if c.body != BodyTrail && c.body != BodyRigid {
		return nil, fmt.Errorf("unknown body mode %q: %w", c.body, ErrInvalidConfig)
	}

	return c, nil
}

// Attach registers a system to be updated every frame. The limb and leg
// constructors call this themselves.
func (c *Creature) Attach(s System) {
	c.systems = append(c.systems, s)
	log.Debugf("attached system #%d (%T)", len(c.systems)-1, s)
}

// Advance runs one frame of the simulation: the body accelerates and turns
// toward the target, the segment trees follow it, and then every system is
// updated. This order matters, because legs measure themselves against the
// hip angles which the trees have just settled into.
func (c *Creature) Advance(x, y float64) {
	p := c.params
	target := math2d.Vector2{X: x, Y: y}
	toTarget := target.Subtract(c.pos)
	dist := toTarget.Magnitude()

	angle, ok := toTarget.Angle()
	if !ok {
		angle = c.heading
	}

	// Only accelerate in proportion to how many feet are planted, to avoid
	// lunging forwards mid-step.
	if dist > p.FThresh {
		c.fSpeed += p.FAccel * c.Standing()
	}
	c.fSpeed *= 1 - p.FRes
	c.speed = math.Max(0, c.fSpeed-p.FFric)

	dif := math2d.Wrap(c.heading - angle)
	if math.Abs(dif) > p.RThresh && dist > p.FThresh {
		c.rSpeed -= p.RAccel * math2d.Sign(dif > 0)
	}
	c.rSpeed *= 1 - p.RRes
	if math.Abs(c.rSpeed) > p.RFric {
		c.rSpeed -= p.RFric * math2d.Sign(c.rSpeed > 0)
	} else {
		c.rSpeed = 0
	}

	c.heading = math2d.Wrap(c.heading + c.rSpeed)
	c.pos = c.pos.Add(math2d.Polar(c.heading, c.speed))

	c.frame = c.heading + math.Pi
	for _, s := range c.children {
		switch c.body {
		case BodyRigid:
			s.Relax(true, true)
		default:
			s.ReachToward(true)
		}
	}

	for _, s := range c.systems {
		s.Update(x, y)
	}

	c.frames++
}

// Standing returns the fraction (from zero to one) of attached systems which
// are not mid-step. A creature with no systems is always standing.
func (c *Creature) Standing() float64 {
	if len(c.systems) == 0 {
		return 1
	}

	n := 0
	for _, s := range c.systems {
		if s.Standing() {
			n++
		}
	}

	return float64(n) / float64(len(c.systems))
}

// Walk calls fn for every segment, depth first from each root segment, until
// fn returns false.
func (c *Creature) Walk(fn func(*Segment) bool) {
	for _, s := range c.children {
		if !s.walk(fn) {
			return
		}
	}
}

// Lines returns one line per segment, for drawing.
func (c *Creature) Lines() []Line {
	lines := make([]Line, len(c.segments))
	for i, s := range c.segments {
		lines[i] = s.Line()
	}

	return lines
}

// Pose returns the position and heading of the body.
func (c *Creature) Pose() math2d.Pose {
	return math2d.Pose{
		Position: c.pos,
		Heading:  c.heading,
	}
}

func (c *Creature) Heading() float64 {
	return c.heading
}

// Speed returns the distance moved during the last frame.
func (c *Creature) Speed() float64 {
	return c.speed
}

// TurnSpeed returns the change in heading during the last frame.
func (c *Creature) TurnSpeed() float64 {
	return c.rSpeed
}

func (c *Creature) Params() Params {
	return c.params
}

func (c *Creature) BodyMode() BodyMode {
	return c.body
}

// Segments returns every segment, in creation order. The slice must not be
// modified.
func (c *Creature) Segments() []*Segment {
	return c.segments
}

// Systems returns the attached systems, in the order they are updated. The
// slice must not be modified.
func (c *Creature) Systems() []System {
	return c.systems
}

// Frames returns the number of times Advance has been called.
func (c *Creature) Frames() uint64 {
	return c.frames
}

func (c *Creature) Position() math2d.Vector2 {
	return c.pos
}

// AbsAngle returns the angle which root segments hang from. See frame.
func (c *Creature) AbsAngle() float64 {
	return c.frame
}

func (c *Creature) Children() []*Segment {
	return c.children
}

func (c *Creature) owner() *Creature {
	return c
}

func (c *Creature) asSegment() *Segment {
	return nil
}

func (c *Creature) adopt(s *Segment) {
	c.children = append(c.children, s)
}

func (c *Creature) register(s *Segment) {
	s.index = len(c.segments)
	c.segments = append(c.segments, s)
}
