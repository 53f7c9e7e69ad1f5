package control

import (
	"sync"

	"github.com/adammck/critter/math2d"
)

const (

	// Distance (in world units) which the target moves per Nudge, at full
	// deflection.
	nudgeSpeed = 8.0
)

// Pointer is a target which is set from outside, e.g. by the mouse in the
// terminal viewer or by a browser over the websocket. It's safe to set from
// any goroutine.
type Pointer struct {
	mu     sync.Mutex
	pos    math2d.Vector2
	pinned bool
}

func NewPointer(x, y float64) *Pointer {
	return &Pointer{
		pos: math2d.Vector2{X: x, Y: y},
	}
}

// Set moves the target, unless it's pinned.
func (p *Pointer) Set(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pinned {
		return
	}

	p.pos = math2d.Vector2{X: x, Y: y}
}

// Nudge moves the target by a fraction (from -1 to 1 on each axis) of the
// nudge speed, like a stick would. Pinned targets can still be nudged.
func (p *Pointer) Nudge(dx, dy float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pos = p.pos.Add(math2d.Vector2{
		X: dx * nudgeSpeed,
		Y: dy * nudgeSpeed,
	})
}

// Pin stops (or, given false, resumes) Set moving the target.
func (p *Pointer) Pin(pinned bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pinned != pinned {
		log.Debugf("pinned=%v at %s", pinned, p.pos)
	}

	p.pinned = pinned
}

func (p *Pointer) Pinned() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pinned
}

func (p *Pointer) Target() math2d.Vector2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}
