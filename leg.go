package critter

import (
	"math"

	"github.com/adammck/critter/math2d"
)

// Step is the state of a leg's gait.
type Step string

const (
	Standing Step = "standing"
	Stepping Step = "stepping"

	// How far (in world units) the foot may drift from its foothold before
	// the leg gives up and steps to a new one.
	driftThreshold = 1.0

	// When the squared change in forwardness between two frames drops below
	// this, the foot has stopped advancing and the step is over.
	stallThreshold = 1.0

	// The preferred foothold distance from the hip, as a fraction of the
	// distance between the two when the leg was built.
	reachFactor = 0.9
)

// LegSystem is a limb which walks. It plants its foot and leaves it there
// until the body has dragged it too far away, then steps to a new foothold
// ahead of (or behind) the hip, and plants it again once the foot stops moving
// forward. Legs step independently; the alternating gait falls out of the
// body only accelerating while most of its feet are planted.
type LegSystem struct {
	LimbSystem

	goal        math2d.Vector2
	step        Step
	forwardness float64

	reach       float64
	swing       float64
	swingOffset float64
}

// NewLegSystem attaches a leg to the creature, in the same manner as
// NewLimbSystem. The foot starts planted wherever the end segment is now.
func NewLegSystem(c *Creature, end *Segment, length int, speed float64) (*LegSystem, error) {
	limb, err := newLimb(c, end, length, speed)
	if err != nil {
		return nil, err
	}

	hip := limb.hip.Position()
	toEnd := end.pos.Subtract(hip)

	// Which side of the body the leg is on decides whether its foothold is
	// swung toward the front or the back.
	endAngle, _ := toEnd.Angle()
	rel := math2d.Wrap(c.heading - endAngle)

	l := &LegSystem{
		LimbSystem:  *limb,
		goal:        end.pos,
		step:        Standing,
		reach:       reachFactor * toEnd.Magnitude(),
		swing:       -rel + math2d.Sign(rel < 0)*math.Pi/2,
		swingOffset: c.heading - limb.hip.AbsAngle(),
	}

	c.Attach(l)
	return l, nil
}

// Update moves the foot toward its foothold, and then decides whether to
// start or finish a step. The creature's target is ignored; legs only care
// about where the hip is.
func (l *LegSystem) Update(x, y float64) {
	l.MoveTo(l.goal.X, l.goal.Y)

	switch l.step {
	case Standing:
		if l.end.pos.Distance(l.goal) > driftThreshold {
			l.setStep(Stepping)
			l.goal = l.foothold()
		}

	case Stepping:
		f := l.measureForwardness()
		dF := l.forwardness - f
		l.forwardness = f

		if dF*dF < stallThreshold {
			l.setStep(Standing)
			l.goal = l.end.pos
		}
	}
}

func (l *LegSystem) setStep(s Step) {
	log.WithField("end", l.end.index).Debugf("step=%v", s)
	l.step = s
}

// foothold picks the next place to put the foot: reach units from the hip in
// the swing direction, jittered by up to half of reach on each axis.
func (l *LegSystem) foothold() math2d.Vector2 {
	hip := math2d.Pose{
		Position: l.hip.Position(),
		Heading:  l.swing + l.hip.AbsAngle() + l.swingOffset,
	}

	rng := l.creature.rng
	jitter := math2d.Vector2{
		X: (2*rng.Float64() - 1) * l.reach / 2,
		Y: (2*rng.Float64() - 1) * l.reach / 2,
	}

	return hip.Add(math2d.Pose{Position: math2d.Vector2{X: l.reach}}).Position.Add(jitter)
}

// measureForwardness returns the signed distance of the foot along the hip's
// forward axis.
func (l *LegSystem) measureForwardness() float64 {
	hip := math2d.Pose{
		Position: l.hip.Position(),
		Heading:  l.hip.AbsAngle(),
	}

	return l.end.pos.Subtract(hip.Position).Dot(hip.Forward())
}

func (l *LegSystem) Standing() bool {
	return l.step == Standing
}

func (l *LegSystem) Step() Step {
	return l.step
}

// Goal returns the current foothold.
func (l *LegSystem) Goal() math2d.Vector2 {
	return l.goal
}

func (l *LegSystem) Reach() float64 {
	return l.reach
}

func (l *LegSystem) Forwardness() float64 {
	return l.forwardness
}
