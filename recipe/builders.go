package recipe

import (
	"math"

	"github.com/adammck/critter"
)

// Params tune the built-in builders. Zero values are replaced with each
// builder's defaults.
type Params struct {
	// Scale of the whole creature. Segment sizes, speeds and accelerations
	// are all multiplied by this.
	Size float64 `yaml:"size"`

	// Number of segments in the body of simple, tentacle and arm.
	Length int `yaml:"length"`

	Legs   int `yaml:"legs"`
	Joints int `yaml:"joints"`
	Tail   int `yaml:"tail"`
}

func (p Params) withDefaults(builder string) Params {
	switch builder {
	case "simple":
		if p.Length == 0 {
			p.Length = 128
		}

	case "tentacle":
		if p.Length == 0 {
			p.Length = 32
		}

	case "arm":
		if p.Length == 0 {
			p.Length = 3
		}

	case "squid":
		if p.Legs == 0 {
			p.Legs = 4
		}
		if p.Joints == 0 {
			p.Joints = 32
		}

	case "lizard":
		if p.Legs == 0 {
			p.Legs = 4
		}
		if p.Tail == 0 {
			p.Tail = 4 + 4*p.Legs
		}

		// Bigger lizards have fewer legs.
		if p.Size == 0 {
			p.Size = 8 / math.Sqrt(float64(p.Legs))
		}
	}

	if p.Size == 0 {
		p.Size = 1
	}

	return p
}

// The motion parameters which most creatures use.
var defaultMotion = critter.Params{
	FAccel:  12,
	FFric:   1,
	FRes:    0.5,
	FThresh: 16,
	RAccel:  0.5,
	RFric:   0.085,
	RRes:    0.5,
	RThresh: 0.3,
}

type builder struct {
	motion func(p Params) critter.Params
	build  func(c *critter.Creature, p Params) error
}

var builders = map[string]builder{
	"simple":   {build: buildSimple},
	"tentacle": {build: buildTentacle},
	"arm":      {build: buildArm},
	"squid":    {motion: squidMotion, build: buildSquid},
	"lizard":   {motion: lizardMotion, build: buildLizard},
}

// assembler builds a tree one piece at a time, remembering the first error so
// that the builders don't need to check after every call. Once it's failed,
// every method is a no-op.
type assembler struct {
	c   *critter.Creature
	err error
}

func (a *assembler) segment(parent critter.Node, size, angle, span, stiffness float64) *critter.Segment {
	if a.err != nil {
		return nil
	}

	s, err := critter.NewSegment(parent, size, angle, span, stiffness)
	if err != nil {
		a.err = err
		return nil
	}

	return s
}

// chain hangs n segments off parent, only the first of which is angled, and
// returns the last.
func (a *assembler) chain(parent critter.Node, n int, size, angle, span, stiffness float64) *critter.Segment {
	var s *critter.Segment
	for i := 0; i < n && a.err == nil; i++ {
		if i > 0 {
			angle = 0
		}

		s = a.segment(parent, size, angle, span, stiffness)
		parent = s
	}

	return s
}

func (a *assembler) limb(end *critter.Segment, length int, speed float64) {
	if a.err != nil {
		return
	}

	_, a.err = critter.NewLimbSystem(a.c, end, length, speed)
}

func (a *assembler) leg(end *critter.Segment, length int, speed float64) {
	if a.err != nil {
		return
	}

	_, a.err = critter.NewLegSystem(a.c, end, length, speed)
}

// buildSimple makes a long tail with no systems at all.
func buildSimple(c *critter.Creature, p Params) error {
	a := &assembler{c: c}
	a.chain(c, p.Length, 8*p.Size, 0, math.Pi/2, 1)
	return a.err
}

// buildTentacle makes a long, floppy chain which reaches for the target.
func buildTentacle(c *critter.Creature, p Params) error {
	a := &assembler{c: c}
	end := a.chain(c, p.Length, 8*p.Size, 0, 2, 1)
	a.limb(end, p.Length, 8*p.Size)
	return a.err
}

// buildArm makes a few long segments which reach for the target.
func buildArm(c *critter.Creature, p Params) error {
	a := &assembler{c: c}
	end := a.chain(c, p.Length, 80*p.Size, 0, 3.1416, 1)
	a.limb(end, p.Length, 8*p.Size)
	return a.err
}

func squidMotion(p Params) critter.Params {
	m := defaultMotion
	m.FAccel = p.Size * 10
	m.FFric = p.Size * 3
	return m
}

// buildSquid makes a fan of long, many jointed legs.
func buildSquid(c *critter.Creature, p Params) error {
	a := &assembler{c: c}

	for i := 0; i < p.Legs; i++ {
		angle := 0.0
		if p.Legs > 1 {
			angle = math.Pi / 2 * (float64(i)/float64(p.Legs-1) - 0.5)
		}

		end := a.chain(c, p.Joints, p.Size*64/float64(p.Joints), angle, 3.1416, 1.2)
		a.leg(end, p.Joints, p.Size*30)
	}

	return a.err
}

func lizardMotion(p Params) critter.Params {
	m := defaultMotion
	m.FAccel = p.Size * 10
	m.FFric = p.Size * 2
	return m
}

// buildLizard makes a neck with a frill, then pairs of legs separated by
// ribbed vertebrae, then a tail which tapers off.
func buildLizard(c *critter.Creature, p Params) error {
	a := &assembler{c: c}
	s := p.Size

	var spine critter.Node = c

	// Neck
	for i := 0; i < 6; i++ {
		spine = a.segment(spine, s*4, 0, math.Pi*2/3, 1.1)
		for _, side := range []float64{-1, 1} {
			n := a.segment(spine, s*3, side, 0.1, 2)
			for j := 0; j < 3; j++ {
				n = a.segment(n, s*0.1, -side*0.1, 0.1, 2)
			}
		}
	}

	// Torso and legs
	for i := 0; i < p.Legs; i++ {
		if i > 0 {

			// Vertebrae and ribs
			for j := 0; j < 6; j++ {
				spine = a.segment(spine, s*4, 0, math.Pi/2, 1.5)
				for _, side := range []float64{-1, 1} {
					n := a.segment(spine, s*3, side*math.Pi/2, 0.1, 1.5)
					for k := 0; k < 3; k++ {
						n = a.segment(n, s*3, -side*0.3, 0.1, 2)
					}
				}
			}
		}

		// Shoulder, humerus, forearm and fingers
		for _, side := range []float64{-1, 1} {
			n := a.segment(spine, s*12, side*math.Pi/4, 0, 8)
			n = a.segment(n, s*16, -side*math.Pi/4, 2*math.Pi, 1)
			n = a.segment(n, s*16, side*math.Pi/2, math.Pi, 2)
			for j := 0; j < 4; j++ {
				a.segment(n, s*4, (float64(j)/3-0.5)*math.Pi/2, 0.1, 4)
			}
			a.leg(n, 3, s*12)
		}
	}

	// Tail
	for i := 0; i < p.Tail; i++ {
		spine = a.segment(spine, s*4, 0, math.Pi*2/3, 1.1)
		for _, side := range []float64{-1, 1} {
			n := a.segment(spine, s*3, side, 0.1, 2)
			for j := 0; j < 3; j++ {
				n = a.segment(n, s*3*float64(p.Tail-i)/float64(p.Tail), -side*0.1, 0.1, 2)
			}
		}
	}

	return a.err
}
