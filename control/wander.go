package control

import (
	"math"
	"time"

	"github.com/adammck/critter/math2d"
)

// Wander is a target which traces a figure eight around a center point,
// advancing a fixed amount every tick. It depends only on the number of ticks
// so far, never on the wall clock, so is repeatable.
type Wander struct {
	Center math2d.Vector2

	// Half the width and height of the figure.
	RadiusX float64
	RadiusY float64

	// Radians of phase per tick.
	Rate float64

	phase float64
}

func NewWander(center math2d.Vector2, rx, ry, rate float64) *Wander {
	return &Wander{
		Center:  center,
		RadiusX: rx,
		RadiusY: ry,
		Rate:    rate,
	}
}

func (w *Wander) Boot() error {
	return nil
}

// Tick advances the target along the path.
func (w *Wander) Tick(now time.Time) error {
	w.phase = math.Mod(w.phase+w.Rate, 2*math.Pi)
	return nil
}

func (w *Wander) Target() math2d.Vector2 {
	return w.Center.Add(math2d.Vector2{
		X: w.RadiusX * math.Cos(w.phase),
		Y: w.RadiusY * math.Sin(2*w.phase),
	})
}
